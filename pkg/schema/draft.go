package schema

// Draft identifies one supported JSON Schema draft. Keywords declare the
// set of drafts they apply under as a DraftSet bitmask (spec.md §6).
type Draft uint8

const (
	Draft04 Draft = 1 << iota
	Draft06
	Draft07
	Draft2019

	// DefaultDraft is used when a schema carries no recognizable $schema.
	DefaultDraft = Draft2019
)

// DraftSet is a bitmask of supported drafts.
type DraftSet uint8

// AllDrafts matches every draft Verita understands.
const AllDrafts = DraftSet(Draft04 | Draft06 | Draft07 | Draft2019)

// Has reports whether d is a member of the set.
func (s DraftSet) Has(d Draft) bool {
	return DraftSet(d)&s != 0
}

func (d Draft) String() string {
	switch d {
	case Draft04:
		return "draft-04"
	case Draft06:
		return "draft-06"
	case Draft07:
		return "draft-07"
	case Draft2019:
		return "2019-09"
	default:
		return "unknown"
	}
}

// metaschemaURIs maps each draft's canonical $schema URI to its Draft.
var metaschemaURIs = map[string]Draft{
	"http://json-schema.org/draft-04/schema#":  Draft04,
	"http://json-schema.org/draft-06/schema#":  Draft06,
	"https://json-schema.org/draft-06/schema#": Draft06,
	"http://json-schema.org/draft-07/schema#":  Draft07,
	"https://json-schema.org/draft-07/schema#": Draft07,
	"https://json-schema.org/draft/2019-09/schema": Draft2019,
}

// DraftFromURI resolves a $schema value to a Draft. ok is false when the URI
// is not one Verita recognizes, in which case callers fall back to
// DefaultDraft (spec.md §6 "Meta-schemas").
func DraftFromURI(uri string) (Draft, bool) {
	trimmed := uri
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '#' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	for withHash, d := range metaschemaURIs {
		if trimHash(withHash) == trimmed {
			return d, true
		}
	}
	return 0, false
}

func trimHash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '#' {
		s = s[:len(s)-1]
	}
	return s
}

// Vocabulary tags a keyword for 2019-09 vocabulary gating (spec.md §4.2,
// §8 property 6).
type Vocabulary string

const (
	VocabCore       Vocabulary = "core"
	VocabValidation Vocabulary = "validation"
	VocabApplicator Vocabulary = "applicator"
	VocabFormat     Vocabulary = "format"
	VocabContent    Vocabulary = "content"
	VocabMetaData   Vocabulary = "metadata"
	VocabUnknown    Vocabulary = "unknown"
)

// defaultVocabularyURIs is the 2019-09 standard vocabulary set, used when a
// schema's $vocabulary map is absent (all standard vocabularies enabled).
var defaultVocabularyURIs = map[Vocabulary]string{
	VocabCore:       "https://json-schema.org/draft/2019-09/vocab/core",
	VocabApplicator: "https://json-schema.org/draft/2019-09/vocab/applicator",
	VocabValidation: "https://json-schema.org/draft/2019-09/vocab/validation",
	VocabMetaData:   "https://json-schema.org/draft/2019-09/vocab/meta-data",
	VocabFormat:     "https://json-schema.org/draft/2019-09/vocab/format",
	VocabContent:    "https://json-schema.org/draft/2019-09/vocab/content",
}
