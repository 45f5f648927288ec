package schema

import (
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry is spec.md §3/§4.4's global scope: a process-wide, concurrency-
// safe store from absolute URI (trailing "#" trimmed) to parsed Document.
// Reads are frequent, writes rare (§5), so it's guarded by a RWMutex; cache
// misses that trigger a download are collapsed with singleflight so two
// concurrent validations resolving the same unseen $ref download it once
// (§5: "implementations may use single-flight to avoid duplicate
// downloads").
type Registry struct {
	mu    sync.RWMutex
	docs  map[string]*Document
	group singleflight.Group
}

// New returns an empty, unseeded registry for callers that want isolation
// from the process-wide Global (spec.md §9 design note).
func New() *Registry {
	return &Registry{docs: make(map[string]*Document)}
}

// Global is the process-wide singleton, seeded with the four meta-schemas
// and the JSON Patch schema at package init (spec.md §4.4).
var Global = newSeededGlobal()

func newSeededGlobal() *Registry {
	r := New()
	seedMetaschemas(r)
	return r
}

func trimURI(uri string) string {
	return strings.TrimRight(uri, "#")
}

// Register stores doc under uri (spec.md §9 lifecycle API).
func (r *Registry) Register(uri string, doc *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[trimURI(uri)] = doc
}

// Unregister removes uri.
func (r *Registry) Unregister(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, trimURI(uri))
}

// Clear empties the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = make(map[string]*Document)
}

func (r *Registry) lookup(uri string) (*Document, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.docs[trimURI(uri)]
	return d, ok
}

// Get resolves uri to a Document: a direct hit, or a single-flighted
// Options.Download + parse + meta-schema validate + cache (spec.md §4.4
// "global.get").
func (r *Registry) Get(uri string, opts *Options) (*Document, error) {
	key := trimURI(uri)
	if !opts.RefreshUserResolver {
		if d, ok := r.lookup(key); ok {
			return d, nil
		}
	}
	if opts.Download == nil {
		return nil, newRefError(uri, errNoDownloader)
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		raw, err := opts.Download(key)
		if err != nil {
			return nil, err
		}
		doc, err := ParseBytes([]byte(raw), opts)
		if err != nil {
			return nil, &SchemaLoadError{URI: key, cause: err}
		}
		if err := validateAgainstMetaschema(doc, opts); err != nil {
			return nil, err
		}
		r.Register(key, doc)
		local := newLocal()
		doc.RegisterSubschemas(key, local)
		for u, d := range local.docs {
			r.Register(u, d)
		}
		if opts.Logger != nil {
			opts.Logger.WithField("uri", key).Debug("verita: cached downloaded schema")
		}
		return doc, nil
	})
	if err != nil {
		return nil, newRefError(uri, err)
	}
	return v.(*Document), nil
}

var errNoDownloader = &downloaderError{}

type downloaderError struct{}

func (*downloaderError) Error() string { return "no Download callback configured" }

// validateAgainstMetaschema checks a freshly downloaded document against
// its own declared $schema (spec.md §4.4 "validates against the declared
// meta-schema, and caches").
func validateAgainstMetaschema(doc *Document, opts *Options) error {
	metaURI := doc.MetaschemaURI
	if metaURI == "" {
		return nil
	}
	meta, ok := r2metaschema(metaURI)
	if !ok {
		return nil
	}
	result := meta.Validate(doc.ToJSON(), opts)
	if !result.AllValid() {
		return &SchemaLoadError{URI: doc.DocumentPath, Errors: []*Result{result}}
	}
	return nil
}

// Local is the per-validation registry of spec.md §3/§4.4: ids and anchors
// discovered while walking the document(s) involved in one Validate call.
type Local struct {
	docs    map[string]*Document
	anchors map[string]map[string]*Document // baseURI -> anchorName -> Document
}

func newLocal() *Local {
	return &Local{
		docs:    make(map[string]*Document),
		anchors: make(map[string]map[string]*Document),
	}
}

func (l *Local) register(uri string, doc *Document) {
	l.docs[trimURI(uri)] = doc
}

func (l *Local) registerAnchor(baseURI, name string, doc *Document) {
	m, ok := l.anchors[trimURI(baseURI)]
	if !ok {
		m = make(map[string]*Document)
		l.anchors[trimURI(baseURI)] = m
	}
	m[name] = doc
}

func (l *Local) lookup(uri string) (*Document, bool) {
	d, ok := l.docs[trimURI(uri)]
	return d, ok
}

func (l *Local) lookupAnchor(baseURI, name string) (*Document, bool) {
	m, ok := l.anchors[trimURI(baseURI)]
	if !ok {
		return nil, false
	}
	d, ok := m[name]
	return d, ok
}
