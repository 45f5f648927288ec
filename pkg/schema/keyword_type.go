package schema

import "fmt"

func init() {
	Builtin.Register("type", Descriptor{
		New:                func() Keyword { return &TypeKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqType,
	})
	Builtin.Register("enum", Descriptor{
		New:                func() Keyword { return &EnumKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqEnumConst,
	})
	Builtin.Register("const", Descriptor{
		New:                func() Keyword { return &ConstKeyword{} },
		Drafts:             DraftSet(Draft06 | Draft07 | Draft2019),
		Vocabulary:         VocabValidation,
		EvaluationSequence: seqEnumConst,
	})
}

// jsonTypeName classifies a decoded JSON value per spec.md §3's six-way
// split ("null", "boolean", "object", "array", "number", "string"), folding
// the integer/number distinction into the "integer" alias type keyword
// checks against separately.
func jsonTypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64:
		if t == float64(int64(t)) {
			return "integer"
		}
		return "number"
	default:
		return "unknown"
	}
}

func matchesType(want string, v any) bool {
	got := jsonTypeName(v)
	if want == "number" {
		return got == "number" || got == "integer"
	}
	return got == want
}

// TypeKeyword implements "type" (spec.md §6): a single name, or an array of
// alternatives (accepted under every draft).
type TypeKeyword struct {
	leaf
	names []string
}

func (k *TypeKeyword) Name() string             { return "type" }
func (k *TypeKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *TypeKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *TypeKeyword) EvaluationSequence() int   { return seqType }

func (k *TypeKeyword) FromJSON(value any, doc *Document) error {
	switch t := value.(type) {
	case string:
		k.names = []string{t}
	case []any:
		k.names = make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("type array entries must be strings, got %T", e)
			}
			k.names = append(k.names, s)
		}
	default:
		return fmt.Errorf("type must be a string or array of strings, got %T", value)
	}
	return nil
}

func (k *TypeKeyword) ToJSON() any {
	if len(k.names) == 1 {
		return k.names[0]
	}
	out := make([]any, len(k.names))
	for i, n := range k.names {
		out[i] = n
	}
	return out
}

func (k *TypeKeyword) Validate(ctx *Context) *Result {
	for _, name := range k.names {
		if matchesType(name, ctx.Instance) {
			return valid("type", ctx)
		}
	}
	return invalid("type", ctx, "value is of type {{actual}}, expected {{expected}}", map[string]any{
		"actual":   jsonTypeName(ctx.Instance),
		"expected": k.names,
	})
}

func (k *TypeKeyword) Equals(other Keyword) bool {
	o, ok := other.(*TypeKeyword)
	if !ok || len(o.names) != len(k.names) {
		return false
	}
	for i := range k.names {
		if k.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

// EnumKeyword implements "enum": the instance must deep-equal one member.
type EnumKeyword struct {
	leaf
	values []any
}

func (k *EnumKeyword) Name() string             { return "enum" }
func (k *EnumKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *EnumKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *EnumKeyword) EvaluationSequence() int   { return seqEnumConst }

func (k *EnumKeyword) FromJSON(value any, doc *Document) error {
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("enum must be an array, got %T", value)
	}
	k.values = arr
	return nil
}

func (k *EnumKeyword) ToJSON() any { return k.values }

func (k *EnumKeyword) Validate(ctx *Context) *Result {
	for _, v := range k.values {
		if deepEqualAny(v, ctx.Instance) {
			return valid("enum", ctx)
		}
	}
	return invalid("enum", ctx, "value does not match any of the enumerated values", nil)
}

func (k *EnumKeyword) Equals(other Keyword) bool {
	o, ok := other.(*EnumKeyword)
	return ok && deepEqualAny(k.values, o.values)
}

// ConstKeyword implements "const" (06+): sugar for a one-member enum.
type ConstKeyword struct {
	leaf
	value any
}

func (k *ConstKeyword) Name() string             { return "const" }
func (k *ConstKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft06 | Draft07 | Draft2019) }
func (k *ConstKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *ConstKeyword) EvaluationSequence() int   { return seqEnumConst }

func (k *ConstKeyword) FromJSON(value any, doc *Document) error {
	k.value = value
	return nil
}

func (k *ConstKeyword) ToJSON() any { return k.value }

func (k *ConstKeyword) Validate(ctx *Context) *Result {
	if deepEqualAny(k.value, ctx.Instance) {
		return valid("const", ctx)
	}
	return invalid("const", ctx, "value does not equal the required constant", nil)
}

func (k *ConstKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ConstKeyword)
	return ok && deepEqualAny(k.value, o.value)
}
