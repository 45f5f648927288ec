package schema

import "github.com/dlovans/verita/internal/pointer"

func init() {
	Builtin.Register("if", Descriptor{
		New: func() Keyword { return &IfKeyword{} }, Drafts: DraftSet(Draft07 | Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqIf,
	})
	Builtin.Register("then", Descriptor{
		New: func() Keyword { return &ThenKeyword{} }, Drafts: DraftSet(Draft07 | Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqThenElse,
	})
	Builtin.Register("else", Descriptor{
		New: func() Keyword { return &ElseKeyword{} }, Drafts: DraftSet(Draft07 | Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqThenElse,
	})
}

// IfKeyword implements "if" (07+): never fails on its own; it only records
// whether the instance matched so ThenKeyword/ElseKeyword can act on it
// (spec.md §6, §4.1 table: "if" -> "ifKeywordValid" -> "then"/"else").
type IfKeyword struct {
	schema *Document
}

func (k *IfKeyword) Name() string             { return "if" }
func (k *IfKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft07 | Draft2019) }
func (k *IfKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *IfKeyword) EvaluationSequence() int   { return seqIf }
func (k *IfKeyword) ToJSON() any               { return k.schema.ToJSON() }

func (k *IfKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "if", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *IfKeyword) Validate(ctx *Context) *Result {
	child := ctx.Child(ctx.Instance, "", "")
	nested := drive(k.schema, child)
	passed := nested.AllValid()
	ctx.Annotate(AnnotationIfKeywordValid, BoolAnnotation(passed))
	if passed {
		ctx.Merge(child)
	}
	// "if" itself never fails validation; it only gates then/else.
	return valid("if", ctx)
}

func (k *IfKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *IfKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *IfKeyword) Equals(other Keyword) bool {
	o, ok := other.(*IfKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// ThenKeyword implements "then": applies only when a sibling "if" matched;
// ignored entirely (never even evaluated) otherwise (spec.md §6).
type ThenKeyword struct {
	schema *Document
}

func (k *ThenKeyword) Name() string             { return "then" }
func (k *ThenKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft07 | Draft2019) }
func (k *ThenKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *ThenKeyword) EvaluationSequence() int   { return seqThenElse }
func (k *ThenKeyword) ToJSON() any               { return k.schema.ToJSON() }

func (k *ThenKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "then", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *ThenKeyword) Validate(ctx *Context) *Result {
	ifResult, present := ctx.Annotation(AnnotationIfKeywordValid)
	if !present || !ifResult.Bool {
		return valid("then", ctx)
	}
	child := ctx.Child(ctx.Instance, "", "")
	nested := drive(k.schema, child)
	if !nested.AllValid() {
		return &Result{Keyword: "then", InstanceLocation: ctx.InstanceLocation,
			RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
			IsValid: false, Nested: []*Result{nested}}
	}
	ctx.Merge(child)
	return &Result{Keyword: "then", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
		IsValid: true, Nested: []*Result{nested}}
}

func (k *ThenKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *ThenKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *ThenKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ThenKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// ElseKeyword mirrors ThenKeyword for the "if" == false branch.
type ElseKeyword struct {
	schema *Document
}

func (k *ElseKeyword) Name() string             { return "else" }
func (k *ElseKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft07 | Draft2019) }
func (k *ElseKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *ElseKeyword) EvaluationSequence() int   { return seqThenElse }
func (k *ElseKeyword) ToJSON() any               { return k.schema.ToJSON() }

func (k *ElseKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "else", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *ElseKeyword) Validate(ctx *Context) *Result {
	ifResult, present := ctx.Annotation(AnnotationIfKeywordValid)
	if !present || ifResult.Bool {
		return valid("else", ctx)
	}
	child := ctx.Child(ctx.Instance, "", "")
	nested := drive(k.schema, child)
	if !nested.AllValid() {
		return &Result{Keyword: "else", InstanceLocation: ctx.InstanceLocation,
			RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
			IsValid: false, Nested: []*Result{nested}}
	}
	ctx.Merge(child)
	return &Result{Keyword: "else", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
		IsValid: true, Nested: []*Result{nested}}
}

func (k *ElseKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *ElseKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *ElseKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ElseKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}
