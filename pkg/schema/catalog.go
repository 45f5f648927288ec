package schema

import "github.com/dlovans/verita/internal/pointer"

// Keyword is the polymorphic operation set spec.md §3/§6 requires of every
// concrete keyword. Implementations are plain structs carrying their parsed
// payload (spec.md §9: "avoid deep inheritance; each keyword is a plain
// value carrying its parsed payload").
type Keyword interface {
	Name() string
	SupportedDrafts() DraftSet
	Vocabulary() Vocabulary
	EvaluationSequence() int
	FromJSON(value any, doc *Document) error
	ToJSON() any
	Validate(ctx *Context) *Result
	RegisterSubschemas(baseURI string, reg *Local)
	ResolveSubschema(p pointer.Pointer) (*Document, bool)
	Equals(other Keyword) bool
}

// Descriptor is one catalog entry: how to construct a keyword, and the
// metadata the parser and engine need without constructing one first.
type Descriptor struct {
	New                 func() Keyword
	Drafts              DraftSet
	Vocabulary          Vocabulary
	EvaluationSequence  int
}

// Catalog maps keyword names to their Descriptor (spec.md §2 item 4:
// "Keyword catalog: a registry of keyword descriptors").
type Catalog struct {
	entries map[string]Descriptor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string]Descriptor)}
}

// Register adds or replaces the descriptor for name.
func (c *Catalog) Register(name string, d Descriptor) {
	c.entries[name] = d
}

// Lookup returns the descriptor for name if it applies under draft.
func (c *Catalog) Lookup(name string, draft Draft) (Descriptor, bool) {
	d, ok := c.entries[name]
	if !ok || !d.Drafts.Has(draft) {
		return Descriptor{}, false
	}
	return d, true
}

// Builtin is the catalog every keyword implementation registers itself into
// via init(), mirroring the pack's altshiftab-jsonschema draft packages
// (types.RegisterVocabulary in an init()) generalized from a type switch
// into registry data.
var Builtin = NewCatalog()
