package schema

import (
	"fmt"
	"strconv"

	"github.com/dlovans/verita/internal/pointer"
)

func init() {
	Builtin.Register("allOf", Descriptor{
		New: func() Keyword { return &AllOfKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqCombinator,
	})
	Builtin.Register("anyOf", Descriptor{
		New: func() Keyword { return &AnyOfKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqCombinator,
	})
	Builtin.Register("oneOf", Descriptor{
		New: func() Keyword { return &OneOfKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqCombinator,
	})
	Builtin.Register("not", Descriptor{
		New: func() Keyword { return &NotKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqCombinator,
	})
}

func parseSchemaArray(value any, name string, doc *Document) ([]*Document, error) {
	arr, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array, got %T", name, value)
	}
	out := make([]*Document, len(arr))
	for i, v := range arr {
		sub, err := parseAt(v, nil, fmt.Sprintf("%s/%d", name, i), doc.Draft)
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

func schemaArrayToJSON(docs []*Document) any {
	out := make([]any, len(docs))
	for i, d := range docs {
		out[i] = d.ToJSON()
	}
	return out
}

func registerSchemaArray(docs []*Document, baseURI string, reg *Local) {
	for _, d := range docs {
		d.RegisterSubschemas(baseURI, reg)
	}
}

func resolveSchemaArray(docs []*Document, p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	idx, err := strconv.Atoi(segs[0])
	if err != nil || idx < 0 || idx >= len(docs) {
		return nil, false
	}
	return docs[idx].ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

// AllOfKeyword implements "allOf": every branch must validate (spec.md §6).
type AllOfKeyword struct {
	branches []*Document
}

func (k *AllOfKeyword) Name() string             { return "allOf" }
func (k *AllOfKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *AllOfKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *AllOfKeyword) EvaluationSequence() int   { return seqCombinator }
func (k *AllOfKeyword) ToJSON() any               { return schemaArrayToJSON(k.branches) }

func (k *AllOfKeyword) FromJSON(value any, doc *Document) error {
	branches, err := parseSchemaArray(value, "allOf", doc)
	if err != nil {
		return err
	}
	k.branches = branches
	return nil
}

func (k *AllOfKeyword) Validate(ctx *Context) *Result {
	out := &Result{Keyword: "allOf", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	for _, branch := range k.branches {
		child := ctx.Child(ctx.Instance, "", "")
		nested := drive(branch, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
			continue
		}
		ctx.Merge(child)
	}
	return out
}

func (k *AllOfKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	registerSchemaArray(k.branches, baseURI, reg)
}

func (k *AllOfKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return resolveSchemaArray(k.branches, p)
}

func (k *AllOfKeyword) Equals(other Keyword) bool {
	o, ok := other.(*AllOfKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// AnyOfKeyword implements "anyOf": at least one branch must validate.
// Every branch is still evaluated (not short-circuited) so its annotations
// merge per spec.md §4.1 ("each successful branch... merges its
// annotations").
type AnyOfKeyword struct {
	branches []*Document
}

func (k *AnyOfKeyword) Name() string             { return "anyOf" }
func (k *AnyOfKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *AnyOfKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *AnyOfKeyword) EvaluationSequence() int   { return seqCombinator }
func (k *AnyOfKeyword) ToJSON() any               { return schemaArrayToJSON(k.branches) }

func (k *AnyOfKeyword) FromJSON(value any, doc *Document) error {
	branches, err := parseSchemaArray(value, "anyOf", doc)
	if err != nil {
		return err
	}
	k.branches = branches
	return nil
}

func (k *AnyOfKeyword) Validate(ctx *Context) *Result {
	out := &Result{Keyword: "anyOf", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation()}
	anyValid := false
	for _, branch := range k.branches {
		child := ctx.Child(ctx.Instance, "", "")
		nested := drive(branch, child)
		out.Nested = append(out.Nested, nested)
		if nested.AllValid() {
			anyValid = true
			ctx.Merge(child)
		}
	}
	out.IsValid = anyValid
	if !anyValid {
		out.ErrorMessage = "value does not match any of the anyOf schemas"
	}
	return out
}

func (k *AnyOfKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	registerSchemaArray(k.branches, baseURI, reg)
}

func (k *AnyOfKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return resolveSchemaArray(k.branches, p)
}

func (k *AnyOfKeyword) Equals(other Keyword) bool {
	o, ok := other.(*AnyOfKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// OneOfKeyword implements "oneOf": exactly one branch must validate.
type OneOfKeyword struct {
	branches []*Document
}

func (k *OneOfKeyword) Name() string             { return "oneOf" }
func (k *OneOfKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *OneOfKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *OneOfKeyword) EvaluationSequence() int   { return seqCombinator }
func (k *OneOfKeyword) ToJSON() any               { return schemaArrayToJSON(k.branches) }

func (k *OneOfKeyword) FromJSON(value any, doc *Document) error {
	branches, err := parseSchemaArray(value, "oneOf", doc)
	if err != nil {
		return err
	}
	k.branches = branches
	return nil
}

func (k *OneOfKeyword) Validate(ctx *Context) *Result {
	out := &Result{Keyword: "oneOf", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation()}
	matchCount := 0
	var winner *Context
	for _, branch := range k.branches {
		child := ctx.Child(ctx.Instance, "", "")
		nested := drive(branch, child)
		out.Nested = append(out.Nested, nested)
		if nested.AllValid() {
			matchCount++
			winner = child
		}
	}
	out.IsValid = matchCount == 1
	switch {
	case matchCount == 0:
		out.ErrorMessage = "value does not match any of the oneOf schemas"
	case matchCount > 1:
		out.ErrorMessage = fmt.Sprintf("value matches %d oneOf schemas, expected exactly one", matchCount)
	default:
		ctx.Merge(winner)
	}
	return out
}

func (k *OneOfKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	registerSchemaArray(k.branches, baseURI, reg)
}

func (k *OneOfKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return resolveSchemaArray(k.branches, p)
}

func (k *OneOfKeyword) Equals(other Keyword) bool {
	o, ok := other.(*OneOfKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// NotKeyword implements "not": the instance must fail the sub-schema. No
// annotations from the failed attempt are merged (spec.md §4.1: "not"
// contributes no annotations, even on success).
type NotKeyword struct {
	schema *Document
}

func (k *NotKeyword) Name() string             { return "not" }
func (k *NotKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *NotKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *NotKeyword) EvaluationSequence() int   { return seqCombinator }
func (k *NotKeyword) ToJSON() any               { return k.schema.ToJSON() }

func (k *NotKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "not", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *NotKeyword) Validate(ctx *Context) *Result {
	child := ctx.Child(ctx.Instance, "", "")
	nested := drive(k.schema, child)
	if nested.AllValid() {
		return invalid("not", ctx, "value must not match the not schema", nil)
	}
	return valid("not", ctx)
}

func (k *NotKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *NotKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *NotKeyword) Equals(other Keyword) bool {
	o, ok := other.(*NotKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}
