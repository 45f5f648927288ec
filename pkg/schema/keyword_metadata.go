package schema

func init() {
	register := func(name string) {
		Builtin.Register(name, Descriptor{
			New:                func() Keyword { return &MetadataKeyword{name: name} },
			Drafts:             AllDrafts,
			Vocabulary:         VocabMetaData,
			EvaluationSequence: seqMetadata,
		})
	}
	register("title")
	register("description")
	register("default")
	register("examples")
	register("$comment")
	register("readOnly")
	register("writeOnly")
	register("deprecated")
}

// MetadataKeyword implements every metadata-vocabulary keyword (spec.md §6:
// "title, description, default, examples, $comment, readOnly, writeOnly,
// deprecated: never affect is_valid, always annotate"). One type covers
// them all since none inspects the instance or carries keyword-specific
// parsing beyond "accept and echo back whatever JSON value was given".
type MetadataKeyword struct {
	leaf
	name  string
	value any
}

func (k *MetadataKeyword) Name() string             { return k.name }
func (k *MetadataKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MetadataKeyword) Vocabulary() Vocabulary    { return VocabMetaData }
func (k *MetadataKeyword) EvaluationSequence() int   { return seqMetadata }
func (k *MetadataKeyword) ToJSON() any               { return k.value }

func (k *MetadataKeyword) FromJSON(value any, doc *Document) error {
	k.value = value
	return nil
}

func (k *MetadataKeyword) Validate(ctx *Context) *Result {
	return valid(k.name, ctx).withAnnotation(k.value)
}

func (k *MetadataKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MetadataKeyword)
	return ok && o.name == k.name && deepEqualAny(k.value, o.value)
}
