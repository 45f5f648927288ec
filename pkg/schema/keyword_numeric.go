package schema

import (
	"fmt"
	"math/big"
)

func init() {
	Builtin.Register("multipleOf", Descriptor{
		New:                func() Keyword { return &MultipleOfKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqNumeric,
	})
	Builtin.Register("maximum", Descriptor{
		New:                func() Keyword { return &MaximumKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqNumeric,
	})
	Builtin.Register("minimum", Descriptor{
		New:                func() Keyword { return &MinimumKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqNumeric,
	})
	Builtin.Register("exclusiveMaximum", Descriptor{
		New:                func() Keyword { return &ExclusiveMaximumKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqNumeric,
	})
	Builtin.Register("exclusiveMinimum", Descriptor{
		New:                func() Keyword { return &ExclusiveMinimumKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqNumeric,
	})
}

func asNumber(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// MultipleOfKeyword implements "multipleOf" using math/big.Rat division of
// both numbers taken at their shortest decimal form (0.1 is exactly 1/10),
// passing when the quotient is an integer. This avoids the IEEE-754 rounding
// error a plain float64 math.Mod would introduce (spec.md §6: "multipleOf:
// exact division with no remainder, accounting for floating point error").
type MultipleOfKeyword struct {
	leaf
	divisor float64
}

func (k *MultipleOfKeyword) Name() string             { return "multipleOf" }
func (k *MultipleOfKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MultipleOfKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MultipleOfKeyword) EvaluationSequence() int   { return seqNumeric }

func (k *MultipleOfKeyword) FromJSON(value any, doc *Document) error {
	f, ok := asNumber(value)
	if !ok || f <= 0 {
		return fmt.Errorf("multipleOf must be a positive number, got %v", value)
	}
	k.divisor = f
	return nil
}

func (k *MultipleOfKeyword) ToJSON() any { return k.divisor }

func (k *MultipleOfKeyword) Validate(ctx *Context) *Result {
	n, ok := asNumber(ctx.Instance)
	if !ok {
		return valid("multipleOf", ctx)
	}
	num, okNum := new(big.Rat).SetString(fmt.Sprint(n))
	div, okDiv := new(big.Rat).SetString(fmt.Sprint(k.divisor))
	if okNum && okDiv && new(big.Rat).Quo(num, div).IsInt() {
		return valid("multipleOf", ctx)
	}
	return invalid("multipleOf", ctx, "{{value}} is not a multiple of {{divisor}}", map[string]any{
		"value":   n,
		"divisor": k.divisor,
	})
}

func (k *MultipleOfKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MultipleOfKeyword)
	return ok && o.divisor == k.divisor
}

// MaximumKeyword implements "maximum". Under draft-04, a boolean
// exclusiveMaximum sibling is published by ExclusiveMaximumKeyword as the
// "__exclusiveMaximumBool" annotation, which this keyword reads to make its
// bound exclusive; 06+ drop that coupling in favor of the standalone numeric
// exclusiveMaximum.
type MaximumKeyword struct {
	leaf
	bound float64
}

func (k *MaximumKeyword) Name() string             { return "maximum" }
func (k *MaximumKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MaximumKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MaximumKeyword) EvaluationSequence() int   { return seqNumeric }

func (k *MaximumKeyword) FromJSON(value any, doc *Document) error {
	f, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("maximum must be a number, got %T", value)
	}
	k.bound = f
	return nil
}

func (k *MaximumKeyword) ToJSON() any { return k.bound }

func (k *MaximumKeyword) Validate(ctx *Context) *Result {
	n, ok := asNumber(ctx.Instance)
	if !ok {
		return valid("maximum", ctx)
	}
	exclusive := false
	if doc, present := ctx.Annotation("__exclusiveMaximumBool"); present {
		exclusive = doc.Bool
	}
	if (exclusive && n < k.bound) || (!exclusive && n <= k.bound) {
		return valid("maximum", ctx)
	}
	return invalid("maximum", ctx, "{{value}} exceeds maximum {{bound}}", map[string]any{
		"value": n, "bound": k.bound,
	})
}

func (k *MaximumKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MaximumKeyword)
	return ok && o.bound == k.bound
}

// MinimumKeyword implements "minimum", symmetric with MaximumKeyword.
type MinimumKeyword struct {
	leaf
	bound float64
}

func (k *MinimumKeyword) Name() string             { return "minimum" }
func (k *MinimumKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MinimumKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MinimumKeyword) EvaluationSequence() int   { return seqNumeric }

func (k *MinimumKeyword) FromJSON(value any, doc *Document) error {
	f, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("minimum must be a number, got %T", value)
	}
	k.bound = f
	return nil
}

func (k *MinimumKeyword) ToJSON() any { return k.bound }

func (k *MinimumKeyword) Validate(ctx *Context) *Result {
	n, ok := asNumber(ctx.Instance)
	if !ok {
		return valid("minimum", ctx)
	}
	exclusive := false
	if doc, present := ctx.Annotation("__exclusiveMinimumBool"); present {
		exclusive = doc.Bool
	}
	if (exclusive && n > k.bound) || (!exclusive && n >= k.bound) {
		return valid("minimum", ctx)
	}
	return invalid("minimum", ctx, "{{value}} is below minimum {{bound}}", map[string]any{
		"value": n, "bound": k.bound,
	})
}

func (k *MinimumKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MinimumKeyword)
	return ok && o.bound == k.bound
}

// ExclusiveMaximumKeyword handles both shapes spec.md §6 describes: the
// draft-04 boolean sibling of "maximum" (which it publishes onto the
// context for MaximumKeyword to read; its evaluation sequence of
// seqNumeric-1 makes it run before "maximum") and the 06+ standalone
// numeric bound.
type ExclusiveMaximumKeyword struct {
	leaf
	isBool  bool
	boolVal bool
	bound   float64
}

func (k *ExclusiveMaximumKeyword) Name() string             { return "exclusiveMaximum" }
func (k *ExclusiveMaximumKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *ExclusiveMaximumKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *ExclusiveMaximumKeyword) EvaluationSequence() int   { return seqNumeric - 1 }

func (k *ExclusiveMaximumKeyword) FromJSON(value any, doc *Document) error {
	if doc.Draft == Draft04 {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("exclusiveMaximum must be a boolean under draft-04, got %T", value)
		}
		k.isBool, k.boolVal = true, b
		return nil
	}
	f, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("exclusiveMaximum must be a number, got %T", value)
	}
	k.bound = f
	return nil
}

func (k *ExclusiveMaximumKeyword) ToJSON() any {
	if k.isBool {
		return k.boolVal
	}
	return k.bound
}

func (k *ExclusiveMaximumKeyword) Validate(ctx *Context) *Result {
	if k.isBool {
		ctx.Annotate("__exclusiveMaximumBool", BoolAnnotation(k.boolVal))
		return valid("exclusiveMaximum", ctx)
	}
	n, ok := asNumber(ctx.Instance)
	if !ok {
		return valid("exclusiveMaximum", ctx)
	}
	if n < k.bound {
		return valid("exclusiveMaximum", ctx)
	}
	return invalid("exclusiveMaximum", ctx, "{{value}} is not strictly below {{bound}}", map[string]any{
		"value": n, "bound": k.bound,
	})
}

func (k *ExclusiveMaximumKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ExclusiveMaximumKeyword)
	return ok && o.isBool == k.isBool && o.boolVal == k.boolVal && o.bound == k.bound
}

// ExclusiveMinimumKeyword is ExclusiveMaximumKeyword's mirror for "minimum".
type ExclusiveMinimumKeyword struct {
	leaf
	isBool  bool
	boolVal bool
	bound   float64
}

func (k *ExclusiveMinimumKeyword) Name() string             { return "exclusiveMinimum" }
func (k *ExclusiveMinimumKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *ExclusiveMinimumKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *ExclusiveMinimumKeyword) EvaluationSequence() int   { return seqNumeric - 1 }

func (k *ExclusiveMinimumKeyword) FromJSON(value any, doc *Document) error {
	if doc.Draft == Draft04 {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("exclusiveMinimum must be a boolean under draft-04, got %T", value)
		}
		k.isBool, k.boolVal = true, b
		return nil
	}
	f, ok := asNumber(value)
	if !ok {
		return fmt.Errorf("exclusiveMinimum must be a number, got %T", value)
	}
	k.bound = f
	return nil
}

func (k *ExclusiveMinimumKeyword) ToJSON() any {
	if k.isBool {
		return k.boolVal
	}
	return k.bound
}

func (k *ExclusiveMinimumKeyword) Validate(ctx *Context) *Result {
	if k.isBool {
		ctx.Annotate("__exclusiveMinimumBool", BoolAnnotation(k.boolVal))
		return valid("exclusiveMinimum", ctx)
	}
	n, ok := asNumber(ctx.Instance)
	if !ok {
		return valid("exclusiveMinimum", ctx)
	}
	if n > k.bound {
		return valid("exclusiveMinimum", ctx)
	}
	return invalid("exclusiveMinimum", ctx, "{{value}} is not strictly above {{bound}}", map[string]any{
		"value": n, "bound": k.bound,
	})
}

func (k *ExclusiveMinimumKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ExclusiveMinimumKeyword)
	return ok && o.isBool == k.isBool && o.boolVal == k.boolVal && o.bound == k.bound
}
