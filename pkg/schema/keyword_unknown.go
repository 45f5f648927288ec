package schema

// UnknownAnnotation holds a keyword name/value pair the catalog does not
// recognize for the document's draft. Per spec.md §4.1 step 2, an unknown
// keyword never affects is_valid; it round-trips through ToJSON and is
// available to callers as a plain annotation (spec.md §8 property 2).
type UnknownAnnotation struct {
	leaf
	name  string
	value any
}

func (u *UnknownAnnotation) Name() string                 { return u.name }
func (u *UnknownAnnotation) SupportedDrafts() DraftSet     { return AllDrafts }
func (u *UnknownAnnotation) Vocabulary() Vocabulary        { return VocabUnknown }
func (u *UnknownAnnotation) EvaluationSequence() int       { return seqMetadata }
func (u *UnknownAnnotation) ToJSON() any                   { return u.value }

func (u *UnknownAnnotation) FromJSON(value any, doc *Document) error {
	u.value = value
	return nil
}

func (u *UnknownAnnotation) Validate(ctx *Context) *Result {
	return valid(u.name, ctx).withAnnotation(u.value)
}

func (u *UnknownAnnotation) Equals(other Keyword) bool {
	o, ok := other.(*UnknownAnnotation)
	if !ok {
		return false
	}
	return u.name == o.name && deepEqualAny(u.value, o.value)
}
