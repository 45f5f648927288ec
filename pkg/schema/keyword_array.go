package schema

import (
	"fmt"
	"strconv"

	"github.com/dlovans/verita/internal/pointer"
)

func init() {
	Builtin.Register("maxItems", Descriptor{
		New: func() Keyword { return &MaxItemsKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqArrayBasic,
	})
	Builtin.Register("minItems", Descriptor{
		New: func() Keyword { return &MinItemsKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqArrayBasic,
	})
	Builtin.Register("uniqueItems", Descriptor{
		New: func() Keyword { return &UniqueItemsKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqArrayBasic,
	})
	Builtin.Register("items", Descriptor{
		New: func() Keyword { return &ItemsKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqItems,
	})
	Builtin.Register("additionalItems", Descriptor{
		New: func() Keyword { return &AdditionalItemsKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqAdditionalItems,
	})
	Builtin.Register("contains", Descriptor{
		New: func() Keyword { return &ContainsKeyword{} }, Drafts: DraftSet(Draft06 | Draft07 | Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqContains,
	})
	Builtin.Register("minContains", Descriptor{
		New: func() Keyword { return &MinContainsKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabValidation, EvaluationSequence: seqMinMaxContains,
	})
	Builtin.Register("maxContains", Descriptor{
		New: func() Keyword { return &MaxContainsKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabValidation, EvaluationSequence: seqMinMaxContains,
	})
	Builtin.Register("unevaluatedItems", Descriptor{
		New: func() Keyword { return &UnevaluatedItemsKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqUnevaluatedItems,
	})
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

type MaxItemsKeyword struct {
	leaf
	bound int
}

func (k *MaxItemsKeyword) Name() string             { return "maxItems" }
func (k *MaxItemsKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MaxItemsKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MaxItemsKeyword) EvaluationSequence() int   { return seqArrayBasic }
func (k *MaxItemsKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MaxItemsKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("maxItems must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MaxItemsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	if !ok || len(arr) <= k.bound {
		return valid("maxItems", ctx)
	}
	return invalid("maxItems", ctx, "array has {{actual}} items, more than maxItems {{bound}}", map[string]any{
		"actual": len(arr), "bound": k.bound,
	})
}

func (k *MaxItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MaxItemsKeyword)
	return ok && o.bound == k.bound
}

type MinItemsKeyword struct {
	leaf
	bound int
}

func (k *MinItemsKeyword) Name() string             { return "minItems" }
func (k *MinItemsKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MinItemsKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MinItemsKeyword) EvaluationSequence() int   { return seqArrayBasic }
func (k *MinItemsKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MinItemsKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("minItems must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MinItemsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	if !ok || len(arr) >= k.bound {
		return valid("minItems", ctx)
	}
	return invalid("minItems", ctx, "array has {{actual}} items, fewer than minItems {{bound}}", map[string]any{
		"actual": len(arr), "bound": k.bound,
	})
}

func (k *MinItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MinItemsKeyword)
	return ok && o.bound == k.bound
}

// UniqueItemsKeyword implements "uniqueItems" via structural deep-equality
// over every pair, matching spec.md §6's "two items are equal using the
// same definition as applies to const/enum".
type UniqueItemsKeyword struct {
	leaf
	enabled bool
}

func (k *UniqueItemsKeyword) Name() string             { return "uniqueItems" }
func (k *UniqueItemsKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *UniqueItemsKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *UniqueItemsKeyword) EvaluationSequence() int   { return seqArrayBasic }
func (k *UniqueItemsKeyword) ToJSON() any               { return k.enabled }

func (k *UniqueItemsKeyword) FromJSON(value any, doc *Document) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("uniqueItems must be a boolean, got %T", value)
	}
	k.enabled = b
	return nil
}

func (k *UniqueItemsKeyword) Validate(ctx *Context) *Result {
	if !k.enabled {
		return valid("uniqueItems", ctx)
	}
	arr, ok := asArray(ctx.Instance)
	if !ok {
		return valid("uniqueItems", ctx)
	}
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if deepEqualAny(arr[i], arr[j]) {
				return invalid("uniqueItems", ctx, "items at indices {{i}} and {{j}} are equal", map[string]any{
					"i": i, "j": j,
				})
			}
		}
	}
	return valid("uniqueItems", ctx)
}

func (k *UniqueItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*UniqueItemsKeyword)
	return ok && o.enabled == k.enabled
}

// ItemsKeyword implements "items": either a single schema applied to every
// element (list validation) or, under all four drafts here, an array of
// schemas applied positionally (tuple validation) with indices beyond the
// tuple left to AdditionalItemsKeyword (spec.md §6).
type ItemsKeyword struct {
	single *Document
	tuple  []*Document
}

func (k *ItemsKeyword) Name() string             { return "items" }
func (k *ItemsKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *ItemsKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *ItemsKeyword) EvaluationSequence() int   { return seqItems }

func (k *ItemsKeyword) FromJSON(value any, doc *Document) error {
	if arr, ok := value.([]any); ok {
		k.tuple = make([]*Document, len(arr))
		for i, v := range arr {
			sub, err := parseAt(v, nil, fmt.Sprintf("items/%d", i), doc.Draft)
			if err != nil {
				return err
			}
			k.tuple[i] = sub
		}
		return nil
	}
	sub, err := parseAt(value, nil, "items", doc.Draft)
	if err != nil {
		return err
	}
	k.single = sub
	return nil
}

func (k *ItemsKeyword) ToJSON() any {
	if k.single != nil {
		return k.single.ToJSON()
	}
	out := make([]any, len(k.tuple))
	for i, d := range k.tuple {
		out[i] = d.ToJSON()
	}
	return out
}

func (k *ItemsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	if !ok {
		return valid("items", ctx)
	}

	out := &Result{Keyword: "items", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}

	if k.single != nil {
		for i, elem := range arr {
			seg := strconv.Itoa(i)
			child := ctx.WithElement(elem, seg)
			nested := drive(k.single, child)
			out.Nested = append(out.Nested, nested)
			if !nested.AllValid() {
				out.IsValid = false
			} else {
				ctx.Merge(child)
			}
		}
		if out.IsValid && len(arr) > 0 {
			ctx.EvaluatedItems = len(arr)
		}
		return out
	}

	limit := len(k.tuple)
	if len(arr) < limit {
		limit = len(arr)
	}
	for i := 0; i < limit; i++ {
		seg := strconv.Itoa(i)
		child := ctx.WithElement(arr[i], seg)
		nested := drive(k.tuple[i], child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		} else {
			ctx.Merge(child)
		}
	}
	if out.IsValid {
		ctx.EvaluatedItems = limit
	}
	ctx.Annotate("__itemsTupleLen", IntAnnotation(len(k.tuple)))
	return out
}

func (k *ItemsKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	if k.single != nil {
		k.single.RegisterSubschemas(baseURI, reg)
		return
	}
	for _, d := range k.tuple {
		d.RegisterSubschemas(baseURI, reg)
	}
}

func (k *ItemsKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if k.single != nil {
		return k.single.ResolveSubschema(p)
	}
	if len(segs) == 0 {
		return nil, false
	}
	idx, err := strconv.Atoi(segs[0])
	if err != nil || idx < 0 || idx >= len(k.tuple) {
		return nil, false
	}
	return k.tuple[idx].ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

func (k *ItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ItemsKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// AdditionalItemsKeyword implements "additionalItems": the schema applied
// to array indices beyond a sibling tuple-form "items" (spec.md §6). Ignored
// entirely when "items" is absent or list-form, per spec.
type AdditionalItemsKeyword struct {
	schema *Document
}

func (k *AdditionalItemsKeyword) Name() string             { return "additionalItems" }
func (k *AdditionalItemsKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *AdditionalItemsKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *AdditionalItemsKeyword) EvaluationSequence() int   { return seqAdditionalItems }

func (k *AdditionalItemsKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "additionalItems", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *AdditionalItemsKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *AdditionalItemsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	out := &Result{Keyword: "additionalItems", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	a, present := ctx.Annotation("__itemsTupleLen")
	if !present {
		return out
	}
	tupleLen := a.Int
	for i := tupleLen; i < len(arr); i++ {
		seg := strconv.Itoa(i)
		child := ctx.WithElement(arr[i], seg)
		nested := drive(k.schema, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		} else {
			ctx.Merge(child)
		}
	}
	if out.IsValid && len(arr) > tupleLen {
		ctx.EvaluatedItems = len(arr)
	}
	return out
}

func (k *AdditionalItemsKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *AdditionalItemsKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *AdditionalItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*AdditionalItemsKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// ContainsKeyword implements "contains": at least one array element must
// validate; the matching count is published for MinContains/MaxContains
// (spec.md §6, §4.1 cross-keyword annotation protocol). A sibling
// "minContains": 0 overrides the default >=1 requirement (spec.md §4.2).
type ContainsKeyword struct {
	schema *Document
	doc    *Document
}

func (k *ContainsKeyword) Name() string             { return "contains" }
func (k *ContainsKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft06 | Draft07 | Draft2019) }
func (k *ContainsKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *ContainsKeyword) EvaluationSequence() int   { return seqContains }

func (k *ContainsKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "contains", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	k.doc = doc
	return nil
}

func (k *ContainsKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *ContainsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	if !ok {
		ctx.Annotate(AnnotationContainsCount, IntAnnotation(0))
		return valid("contains", ctx)
	}
	matches := 0
	for i, elem := range arr {
		seg := strconv.Itoa(i)
		child := ctx.WithElement(elem, seg)
		nested := drive(k.schema, child)
		if nested.AllValid() {
			matches++
			ctx.Merge(child)
		}
	}
	ctx.Annotate(AnnotationContainsCount, IntAnnotation(matches))
	if matches > 0 || k.minContainsAllowsZero() {
		return valid("contains", ctx)
	}
	return invalid("contains", ctx, "no array items match the contains schema", nil)
}

// minContainsAllowsZero reports whether a sibling "minContains": 0 relaxes
// the default "at least one match" requirement.
func (k *ContainsKeyword) minContainsAllowsZero() bool {
	if k.doc == nil || k.doc.Keywords == nil {
		return false
	}
	kw, present := k.doc.Keywords.Get("minContains")
	if !present {
		return false
	}
	mc, ok := kw.(*MinContainsKeyword)
	return ok && mc.bound == 0
}

func (k *ContainsKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *ContainsKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *ContainsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ContainsKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// MinContainsKeyword implements 2019-09's "minContains", reading the match
// count "contains" published on ctx (spec.md §4.1 table).
type MinContainsKeyword struct {
	leaf
	bound int
}

func (k *MinContainsKeyword) Name() string             { return "minContains" }
func (k *MinContainsKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *MinContainsKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MinContainsKeyword) EvaluationSequence() int   { return seqMinMaxContains }
func (k *MinContainsKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MinContainsKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("minContains must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MinContainsKeyword) Validate(ctx *Context) *Result {
	if _, ok := asArray(ctx.Instance); !ok {
		return valid("minContains", ctx)
	}
	count := 0
	if a, present := ctx.Annotation(AnnotationContainsCount); present {
		count = a.Int
	}
	if count >= k.bound {
		return valid("minContains", ctx)
	}
	return invalid("minContains", ctx, "only {{actual}} items matched contains, fewer than minContains {{bound}}", map[string]any{
		"actual": count, "bound": k.bound,
	})
}

func (k *MinContainsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MinContainsKeyword)
	return ok && o.bound == k.bound
}

// MaxContainsKeyword implements 2019-09's "maxContains".
type MaxContainsKeyword struct {
	leaf
	bound int
}

func (k *MaxContainsKeyword) Name() string             { return "maxContains" }
func (k *MaxContainsKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *MaxContainsKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MaxContainsKeyword) EvaluationSequence() int   { return seqMinMaxContains }
func (k *MaxContainsKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MaxContainsKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("maxContains must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MaxContainsKeyword) Validate(ctx *Context) *Result {
	if _, ok := asArray(ctx.Instance); !ok {
		return valid("maxContains", ctx)
	}
	count := 0
	if a, present := ctx.Annotation(AnnotationContainsCount); present {
		count = a.Int
	}
	if count <= k.bound {
		return valid("maxContains", ctx)
	}
	return invalid("maxContains", ctx, "{{actual}} items matched contains, more than maxContains {{bound}}", map[string]any{
		"actual": count, "bound": k.bound,
	})
}

func (k *MaxContainsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MaxContainsKeyword)
	return ok && o.bound == k.bound
}

// UnevaluatedItemsKeyword implements 2019-09's "unevaluatedItems": the
// schema applied to every array index at or beyond the evaluated-items
// watermark left by items/additionalItems (spec.md §6, §8 property 3).
type UnevaluatedItemsKeyword struct {
	schema *Document
}

func (k *UnevaluatedItemsKeyword) Name() string             { return "unevaluatedItems" }
func (k *UnevaluatedItemsKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *UnevaluatedItemsKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *UnevaluatedItemsKeyword) EvaluationSequence() int   { return seqUnevaluatedItems }

func (k *UnevaluatedItemsKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "unevaluatedItems", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *UnevaluatedItemsKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *UnevaluatedItemsKeyword) Validate(ctx *Context) *Result {
	arr, ok := asArray(ctx.Instance)
	out := &Result{Keyword: "unevaluatedItems", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	for i := ctx.EvaluatedItems; i < len(arr); i++ {
		seg := strconv.Itoa(i)
		child := ctx.WithElement(arr[i], seg)
		nested := drive(k.schema, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		} else {
			ctx.Merge(child)
		}
	}
	if out.IsValid {
		ctx.EvaluatedItems = len(arr)
	}
	return out
}

func (k *UnevaluatedItemsKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *UnevaluatedItemsKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *UnevaluatedItemsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*UnevaluatedItemsKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}
