package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

func init() {
	Builtin.Register("maxLength", Descriptor{
		New:                func() Keyword { return &MaxLengthKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqString,
	})
	Builtin.Register("minLength", Descriptor{
		New:                func() Keyword { return &MinLengthKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqString,
	})
	Builtin.Register("pattern", Descriptor{
		New:                func() Keyword { return &PatternKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqString,
	})
}

// asUint reads a non-negative integer-valued JSON number, the shape spec.md
// §6 requires for size-bound keywords (maxLength, minItems, and so on).
func asUint(value any) (int, bool) {
	f, ok := value.(float64)
	if !ok || f < 0 || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// MaxLengthKeyword implements "maxLength", counting Unicode code points per
// spec.md §6 ("length is measured in Unicode code points, not bytes").
type MaxLengthKeyword struct {
	leaf
	bound int
}

func (k *MaxLengthKeyword) Name() string             { return "maxLength" }
func (k *MaxLengthKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MaxLengthKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MaxLengthKeyword) EvaluationSequence() int   { return seqString }

func (k *MaxLengthKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("maxLength must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MaxLengthKeyword) ToJSON() any { return float64(k.bound) }

func (k *MaxLengthKeyword) Validate(ctx *Context) *Result {
	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("maxLength", ctx)
	}
	n := utf8.RuneCountInString(s)
	if n <= k.bound {
		return valid("maxLength", ctx)
	}
	return invalid("maxLength", ctx, "string length {{actual}} exceeds maxLength {{bound}}", map[string]any{
		"actual": n, "bound": k.bound,
	})
}

func (k *MaxLengthKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MaxLengthKeyword)
	return ok && o.bound == k.bound
}

// MinLengthKeyword implements "minLength".
type MinLengthKeyword struct {
	leaf
	bound int
}

func (k *MinLengthKeyword) Name() string             { return "minLength" }
func (k *MinLengthKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MinLengthKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MinLengthKeyword) EvaluationSequence() int   { return seqString }

func (k *MinLengthKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("minLength must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MinLengthKeyword) ToJSON() any { return float64(k.bound) }

func (k *MinLengthKeyword) Validate(ctx *Context) *Result {
	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("minLength", ctx)
	}
	n := utf8.RuneCountInString(s)
	if n >= k.bound {
		return valid("minLength", ctx)
	}
	return invalid("minLength", ctx, "string length {{actual}} is below minLength {{bound}}", map[string]any{
		"actual": n, "bound": k.bound,
	})
}

func (k *MinLengthKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MinLengthKeyword)
	return ok && o.bound == k.bound
}

// PatternKeyword implements "pattern" using dlclark/regexp2, since JSON
// Schema patterns are ECMA-262 regular expressions and Go's RE2-based
// regexp package rejects constructs (lookaround, backreferences) schemas
// in the wild commonly use.
type PatternKeyword struct {
	leaf
	raw string
	re  *regexp2.Regexp
}

func (k *PatternKeyword) Name() string             { return "pattern" }
func (k *PatternKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *PatternKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *PatternKeyword) EvaluationSequence() int   { return seqString }

func (k *PatternKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("pattern must be a string, got %T", value)
	}
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return fmt.Errorf("pattern %q is not a valid regular expression: %w", s, err)
	}
	k.raw = s
	k.re = re
	return nil
}

func (k *PatternKeyword) ToJSON() any { return k.raw }

func (k *PatternKeyword) Validate(ctx *Context) *Result {
	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("pattern", ctx)
	}
	matched, err := k.re.MatchString(s)
	if err != nil || !matched {
		return invalid("pattern", ctx, "string does not match pattern {{pattern}}", map[string]any{
			"pattern": k.raw,
		})
	}
	return valid("pattern", ctx)
}

func (k *PatternKeyword) Equals(other Keyword) bool {
	o, ok := other.(*PatternKeyword)
	return ok && o.raw == k.raw
}
