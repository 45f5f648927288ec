package schema

import (
	"fmt"

	"github.com/dlovans/verita/internal/pointer"
)

// Result is one node of the validation result tree (spec.md §3
// "ValidationResult (tree)"). The engine assembles these bottom-up as each
// keyword is evaluated; OutputFormat collapses the tree per spec.md §4.3.
type Result struct {
	Keyword            string
	InstanceLocation   pointer.Pointer
	AbsoluteLocation   string
	RelativeLocation   pointer.Pointer
	IsValid            bool
	ErrorMessage       string
	AdditionalInfo     map[string]any
	AnnotationValue    any
	HasAnnotationValue bool
	Nested             []*Result
}

// valid builds a passing leaf result for the given keyword.
func valid(kw string, ctx *Context) *Result {
	return &Result{
		Keyword:          kw,
		InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation,
		AbsoluteLocation: ctx.absoluteLocation(),
		IsValid:          true,
	}
}

// invalid builds a failing leaf result with a templated error message.
func invalid(kw string, ctx *Context, template string, info map[string]any) *Result {
	return &Result{
		Keyword:          kw,
		InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation,
		AbsoluteLocation: ctx.absoluteLocation(),
		IsValid:          false,
		ErrorMessage:     substitute(template, info),
		AdditionalInfo:   info,
	}
}

// withAnnotation attaches a passing result's annotation payload (emitted to
// Detailed/Verbose output; spec.md §4.2 metadata keywords "never fail,
// always annotate").
func (r *Result) withAnnotation(v any) *Result {
	r.AnnotationValue = v
	r.HasAnnotationValue = true
	return r
}

// AllValid reports whether r passed. Each node's IsValid already folds in its
// nested results by that keyword's own rule, so a passing anyOf/oneOf keeps
// its failing branches in Nested and still counts as valid.
func (r *Result) AllValid() bool {
	return r.IsValid
}

func substitute(template string, info map[string]any) string {
	if template == "" || info == nil {
		return template
	}
	out := make([]byte, 0, len(template))
	for i := 0; i < len(template); {
		if i+1 < len(template) && template[i] == '{' && template[i+1] == '{' {
			end := indexFrom(template, "}}", i+2)
			if end >= 0 {
				name := template[i+2 : end]
				if v, ok := info[name]; ok {
					out = append(out, []byte(toDisplayString(v))...)
					i = end + 2
					continue
				}
			}
		}
		out = append(out, template[i])
		i++
	}
	return string(out)
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := indexOf(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func toDisplayString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
