package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dlovans/verita/internal/pointer"
)

// Document is spec.md §3's SchemaDocument: the composite parsed form of one
// schema document.
type Document struct {
	DocumentPath     string
	ID               string
	BoolForm         *bool
	Keywords         *orderedmap.OrderedMap[string, Keyword]
	MetaschemaURI    string
	Draft            Draft
	VocabularyMap    map[string]bool // nil == all standard vocabularies enabled
	RecursiveAnchor  bool            // $recursiveAnchor: true (2019-09 only)
}

// Parse builds a Document from a decoded JSON value (spec.md §4.1 "Parse").
func Parse(v any, opts *Options) (*Document, error) {
	return parseAt(v, opts, "", DefaultDraftFor(opts))
}

// DefaultDraftFor resolves the draft Options.DefaultDraft names, falling
// back to the package default.
func DefaultDraftFor(opts *Options) Draft {
	if opts == nil || opts.DefaultDraft == 0 {
		return DefaultDraft
	}
	return opts.DefaultDraft
}

// ParseBytes unmarshals raw JSON text and parses it as a schema.
func ParseBytes(raw []byte, opts *Options) (*Document, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber() // reject ambiguity, then normalize below
	if err := dec.Decode(&v); err != nil {
		return nil, newParseError("", "", err)
	}
	return Parse(normalizeNumbers(v), opts)
}

// normalizeNumbers converts json.Number leaves (produced by UseNumber, which
// we use only to detect malformed numeric literals up front) into float64,
// matching spec.md §3: "Numbers are IEEE-754 doubles."
func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	default:
		return v
	}
}

func parseAt(v any, opts *Options, path string, draft Draft) (*Document, error) {
	if b, ok := v.(bool); ok {
		return &Document{BoolForm: &b, Draft: draft}, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, newParseError("", path, fmt.Errorf("schema must be an object or boolean, got %T", v))
	}

	doc := &Document{
		Draft:    draft,
		Keywords: orderedmap.New[string, Keyword](),
	}

	if s, ok := obj["$schema"].(string); ok {
		doc.MetaschemaURI = s
		if d, known := DraftFromURI(s); known {
			doc.Draft = d
			draft = d
		}
	}
	if vocab, ok := obj["$vocabulary"].(map[string]any); ok {
		doc.VocabularyMap = make(map[string]bool, len(vocab))
		for uri, enabled := range vocab {
			if b, ok := enabled.(bool); ok {
				doc.VocabularyMap[uri] = b
			}
		}
	}

	catalog := Builtin

	// Keyword names are visited in a stable order so identically-shaped
	// documents parse identically (Go map iteration order is randomized);
	// this matters for round-tripping (spec.md §8 property 2).
	names := sortedKeys(obj)
	for _, name := range names {
		raw := obj[name]
		desc, known := catalog.Lookup(name, draft)
		if !known {
			if _, present := doc.Keywords.Get(name); present {
				continue
			}
			kw := &UnknownAnnotation{name: name, value: raw}
			doc.Keywords.Set(name, kw)
			continue
		}
		if _, present := doc.Keywords.Get(name); present {
			return nil, newParseError(name, path, fmt.Errorf("duplicate keyword %q", name))
		}
		kw := desc.New()
		if err := kw.FromJSON(raw, doc); err != nil {
			return nil, newParseError(name, path, err)
		}
		doc.Keywords.Set(name, kw)
	}

	if id, ok := obj["$id"].(string); ok {
		doc.ID = id
	} else if id, ok := obj["id"].(string); ok && draft == Draft04 {
		doc.ID = id
	}
	if ra, ok := obj["$recursiveAnchor"].(bool); ok {
		doc.RecursiveAnchor = ra
	}

	return doc, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Simple insertion sort keeps this file free of a "sort" import for a
	// handful of keys per schema object; correctness, not performance,
	// matters here (parse-time, not validate-time).
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// ToJSON round-trips the document back into a decoded JSON value (spec.md
// §8 property 2).
func (d *Document) ToJSON() any {
	if d.BoolForm != nil {
		return *d.BoolForm
	}
	out := make(map[string]any, d.Keywords.Len())
	for pair := d.Keywords.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.ToJSON()
	}
	return out
}

// RegisterSubschemas walks the document's keywords to populate the local
// registry with every $id/$anchor reachable from it (spec.md §4.4).
func (d *Document) RegisterSubschemas(baseURI string, reg *Local) {
	effectiveBase := baseURI
	if d.ID != "" {
		effectiveBase = resolveURI(baseURI, d.ID)
		reg.register(effectiveBase, d)
	}
	if anchor, ok := d.anchorName(); ok {
		reg.registerAnchor(effectiveBase, anchor, d)
	}
	if d.Keywords == nil {
		return
	}
	for pair := d.Keywords.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.RegisterSubschemas(effectiveBase, reg)
	}
}

func (d *Document) anchorName() (string, bool) {
	if d.Keywords == nil {
		return "", false
	}
	kw, present := d.Keywords.Get("$anchor")
	if !present {
		return "", false
	}
	if ann, ok := kw.(*UnknownAnnotation); ok {
		if s, ok := ann.value.(string); ok {
			return s, true
		}
	}
	return "", false
}

// resolveURI resolves ref against base per RFC 3986, as used throughout
// $ref/$id handling.
func resolveURI(base, ref string) string {
	if ref == "" {
		return base
	}
	if strings.Contains(ref, "://") {
		return ref
	}
	if strings.HasPrefix(ref, "#") {
		trimmed := strings.TrimRight(base, "#")
		return trimmed + ref
	}
	if base == "" {
		return ref
	}
	idx := strings.LastIndex(base, "/")
	if idx < 0 {
		return ref
	}
	return base[:idx+1] + ref
}

// Validate is Document's entry point (spec.md §4.1 "Validate(instance)").
func (d *Document) Validate(instance any, opts *Options) *Result {
	if opts == nil {
		opts = DefaultOptions()
	}
	ctx := rootContext(d, instance, opts)
	// The root document is addressable at its own base URI even when it
	// declares no $id, so a bare "#/..." $ref inside an anonymous top-level
	// schema still resolves against the document it lives in.
	ctx.LocalRegistry.register(ctx.BaseURI, d)
	d.RegisterSubschemas(ctx.BaseURI, ctx.LocalRegistry)
	return drive(d, ctx)
}

// ResolveSubschema implements resolve_subschema for the document itself: an
// empty pointer resolves to the document, otherwise the first segment
// selects a keyword which is asked to continue the walk.
func (d *Document) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return d, true
	}
	if d.Keywords == nil {
		return nil, false
	}
	kw, present := d.Keywords.Get(segs[0])
	if !present {
		return nil, false
	}
	return kw.ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}
