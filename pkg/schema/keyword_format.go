package schema

import (
	"fmt"

	intformat "github.com/dlovans/verita/internal/format"
)

func init() {
	Builtin.Register("format", Descriptor{
		New:                func() Keyword { return &FormatKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabFormat,
		EvaluationSequence: seqFormat,
	})
}

var formatRegistry = intformat.NewRegistry()

func draftToFormatSet(d Draft) intformat.DraftSet {
	switch d {
	case Draft04:
		return intformat.Draft04
	case Draft06:
		return intformat.Draft06
	case Draft07:
		return intformat.Draft07
	default:
		return intformat.Draft2019
	}
}

// FormatKeyword implements "format" (spec.md §6, §4.2): an assertion when
// Options.ValidateFormat is set (the default for 2019-09 annotation-only
// behavior is overridden per Options, since the format vocabulary is
// opt-in starting 2019-09), otherwise a pure annotation.
type FormatKeyword struct {
	leaf
	name string
	draft Draft
}

func (k *FormatKeyword) Name() string             { return "format" }
func (k *FormatKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *FormatKeyword) Vocabulary() Vocabulary    { return VocabFormat }
func (k *FormatKeyword) EvaluationSequence() int   { return seqFormat }
func (k *FormatKeyword) ToJSON() any               { return k.name }

func (k *FormatKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("format must be a string, got %T", value)
	}
	k.name = s
	k.draft = doc.Draft
	return nil
}

func (k *FormatKeyword) Validate(ctx *Context) *Result {
	known := formatRegistry.IsKnown(k.name)
	if !known {
		if ctx.Options.ValidateFormat && !ctx.Options.AllowUnknownFormats {
			return invalid("format", ctx, "unknown format {{format}}", map[string]any{"format": k.name})
		}
		return valid("format", ctx).withAnnotation(k.name)
	}

	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("format", ctx).withAnnotation(k.name)
	}

	err, matched := formatRegistry.Validate(k.name, s, draftToFormatSet(k.draft))
	if !matched || err == nil {
		return valid("format", ctx).withAnnotation(k.name)
	}
	if !ctx.Options.ValidateFormat {
		// Annotation-only mode: record the failure as metadata, not a
		// validation error (spec.md §4.2 "format: annotation unless
		// Options.ValidateFormat").
		return valid("format", ctx).withAnnotation(k.name)
	}
	return invalid("format", ctx, "value does not match format {{format}}: {{cause}}", map[string]any{
		"format": k.name,
		"cause":  err.Error(),
	})
}

func (k *FormatKeyword) Equals(other Keyword) bool {
	o, ok := other.(*FormatKeyword)
	return ok && o.name == k.name
}
