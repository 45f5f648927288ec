package schema

// AnnotationKind discriminates the payload carried by an Annotation. Using a
// closed sum type here (spec.md §9: "Prefer a closed sum type of possible
// annotation values... for compile-time safety") instead of a bare `any`
// keeps producers and consumers of the cross-keyword annotation channel
// honest about what they're passing around.
type AnnotationKind int

const (
	AnnotationBool AnnotationKind = iota
	AnnotationInt
	AnnotationString
	AnnotationStringSet
)

// Annotation is one value written to a Context's annotation channel by a
// producer keyword (spec.md §4.1's cross-keyword annotation protocol table)
// and read by a later keyword in the same schema object.
type Annotation struct {
	Kind      AnnotationKind
	Bool      bool
	Int       int
	String    string
	StringSet map[string]struct{}
}

// Canonical annotation channel keys (spec.md §4.1 table).
const (
	AnnotationIfKeywordValid = "ifKeywordValid"
	AnnotationContainsCount  = "containsCount"
	AnnotationRecursiveAnchor = "recursive_anchor"
)

// BoolAnnotation builds a bool-kind Annotation.
func BoolAnnotation(v bool) Annotation { return Annotation{Kind: AnnotationBool, Bool: v} }

// IntAnnotation builds an int-kind Annotation.
func IntAnnotation(v int) Annotation { return Annotation{Kind: AnnotationInt, Int: v} }

// StringAnnotation builds a string-kind Annotation (used for URIs).
func StringAnnotation(v string) Annotation { return Annotation{Kind: AnnotationString, String: v} }
