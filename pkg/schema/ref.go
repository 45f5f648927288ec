package schema

import (
	"fmt"
	"strings"

	"github.com/dlovans/verita/internal/pointer"
)

func init() {
	Builtin.Register("$ref", Descriptor{
		New:                func() Keyword { return &RefKeyword{} },
		Drafts:             AllDrafts,
		Vocabulary:         VocabCore,
		EvaluationSequence: seqRef,
	})
	Builtin.Register("$recursiveRef", Descriptor{
		New:                func() Keyword { return &RecursiveRefKeyword{} },
		Drafts:             DraftSet(Draft2019),
		Vocabulary:         VocabCore,
		EvaluationSequence: seqRef,
	})
	Builtin.Register("$defs", Descriptor{
		New:                func() Keyword { return &DefsKeyword{name: "$defs"} },
		Drafts:             DraftSet(Draft2019),
		Vocabulary:         VocabCore,
		EvaluationSequence: seqCore,
	})
	Builtin.Register("definitions", Descriptor{
		New:                func() Keyword { return &DefsKeyword{name: "definitions"} },
		Drafts:             DraftSet(Draft04 | Draft06 | Draft07),
		Vocabulary:         VocabCore,
		EvaluationSequence: seqCore,
	})
}

// splitFragment splits an absolute-or-relative URI into its base and
// fragment (without the leading '#').
func splitFragment(uri string) (base, frag string) {
	idx := strings.IndexByte(uri, '#')
	if idx < 0 {
		return uri, ""
	}
	return uri[:idx], uri[idx+1:]
}

// resolveRefTarget implements the reference resolution algorithm of spec.md
// §4.1: resolve the raw $ref value against the current base URI, split into
// base+fragment, resolve the base to a Document (local registry, then the
// configured global Registry, downloading if necessary), and resolve the
// fragment within it — either a plain name against the local registry's
// anchor table or a JSON Pointer via ResolveSubschema.
func resolveRefTarget(ctx *Context, raw string) (*Document, error) {
	abs := resolveURI(ctx.BaseURI, raw)
	base, frag := splitFragment(abs)
	if base == "" {
		base = ctx.BaseURI
	}

	if frag != "" && !strings.HasPrefix(frag, "/") {
		if d, ok := ctx.LocalRegistry.lookupAnchor(base, frag); ok {
			return d, nil
		}
	}

	doc, ok := ctx.LocalRegistry.lookup(base)
	if !ok {
		if ctx.Options == nil || ctx.Options.Registry == nil {
			return nil, fmt.Errorf("no registry configured to resolve %q", base)
		}
		d, err := ctx.Options.Registry.Get(base, ctx.Options)
		if err != nil {
			return nil, err
		}
		doc = d
		local := newLocal()
		doc.RegisterSubschemas(base, local)
		for u, dd := range local.docs {
			ctx.LocalRegistry.register(u, dd)
		}
	}

	if frag == "" || strings.HasPrefix(frag, "/") {
		p, err := pointer.Parse("/" + strings.TrimPrefix(frag, "/"))
		if frag == "" {
			p = pointer.Root
		} else if err != nil {
			return nil, fmt.Errorf("malformed fragment %q: %w", frag, err)
		}
		target, ok := doc.ResolveSubschema(p)
		if !ok {
			return nil, fmt.Errorf("pointer %q does not resolve within %q", frag, base)
		}
		return target, nil
	}

	if d, ok := ctx.LocalRegistry.lookupAnchor(base, frag); ok {
		return d, nil
	}
	return nil, fmt.Errorf("anchor %q not found in %q", frag, base)
}

// childForRef builds the context a resolved subschema validates under:
// instance location is unchanged, but the base URI and relative-location
// tracking reset to the target document's own frame, and the dynamic scope
// grows by one (spec.md §3 "DynamicScope" / §4.1 $recursiveRef semantics).
func childForRef(ctx *Context, target *Document, baseURI string) *Context {
	child := ctx.Child(ctx.Instance, "", "")
	child.BaseURI = baseURI
	root := pointer.Root
	child.BaseRelativeLocation = &root
	child.RelativeLocation = pointer.Root
	child.DynamicScope = append(append([]*Document{}, ctx.DynamicScope...), target)
	return child
}

// RefKeyword implements $ref (spec.md §6/§4.1).
type RefKeyword struct {
	leaf
	target string
}

func (k *RefKeyword) Name() string             { return "$ref" }
func (k *RefKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *RefKeyword) Vocabulary() Vocabulary    { return VocabCore }
func (k *RefKeyword) EvaluationSequence() int   { return seqRef }
func (k *RefKeyword) ToJSON() any               { return k.target }

func (k *RefKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("$ref must be a string, got %T", value)
	}
	k.target = s
	return nil
}

func (k *RefKeyword) Equals(other Keyword) bool {
	o, ok := other.(*RefKeyword)
	return ok && o.target == k.target
}

func (k *RefKeyword) Validate(ctx *Context) *Result {
	abs := resolveURI(ctx.BaseURI, k.target)
	visitKey := abs + "@" + ctx.InstanceLocation.String()
	if _, seen := ctx.VisitedRefs[visitKey]; seen {
		return invalid("$ref", ctx, "cyclic reference through {{ref}}", map[string]any{"ref": k.target})
	}

	target, err := resolveRefTarget(ctx, k.target)
	if err != nil {
		return invalid("$ref", ctx, "could not resolve reference {{ref}}: {{cause}}", map[string]any{
			"ref":   k.target,
			"cause": err.Error(),
		})
	}

	base, _ := splitFragment(abs)
	child := childForRef(ctx, target, base)
	child.VisitedRefs = markVisited(ctx.VisitedRefs, visitKey)

	nested := drive(target, child)
	out := &Result{
		Keyword:          "$ref",
		InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation,
		AbsoluteLocation: ctx.absoluteLocation(),
		IsValid:          nested.AllValid(),
		Nested:           []*Result{nested},
	}
	if out.IsValid {
		ctx.Merge(child)
	}
	return out
}

func markVisited(prev map[string]struct{}, key string) map[string]struct{} {
	next := make(map[string]struct{}, len(prev)+1)
	for k := range prev {
		next[k] = struct{}{}
	}
	next[key] = struct{}{}
	return next
}

// RecursiveRefKeyword implements 2019-09's $recursiveRef: identical to $ref
// when the target carries no $recursiveAnchor, but when it does, the
// resolution target is replaced by the outermost schema in the dynamic
// scope that itself declares $recursiveAnchor: true (spec.md §6).
type RecursiveRefKeyword struct {
	leaf
	target string
}

func (k *RecursiveRefKeyword) Name() string             { return "$recursiveRef" }
func (k *RecursiveRefKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *RecursiveRefKeyword) Vocabulary() Vocabulary    { return VocabCore }
func (k *RecursiveRefKeyword) EvaluationSequence() int   { return seqRef }
func (k *RecursiveRefKeyword) ToJSON() any               { return k.target }

func (k *RecursiveRefKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("$recursiveRef must be a string, got %T", value)
	}
	k.target = s
	return nil
}

func (k *RecursiveRefKeyword) Equals(other Keyword) bool {
	o, ok := other.(*RecursiveRefKeyword)
	return ok && o.target == k.target
}

func (k *RecursiveRefKeyword) Validate(ctx *Context) *Result {
	abs := resolveURI(ctx.BaseURI, k.target)
	base, _ := splitFragment(abs)

	target, err := resolveRefTarget(ctx, k.target)
	if err != nil {
		return invalid("$recursiveRef", ctx, "could not resolve recursive reference {{ref}}: {{cause}}", map[string]any{
			"ref":   k.target,
			"cause": err.Error(),
		})
	}

	if target.RecursiveAnchor {
		for _, scoped := range ctx.DynamicScope {
			if scoped.RecursiveAnchor {
				target = scoped
				break
			}
		}
	}

	visitKey := base + "@recursive@" + ctx.InstanceLocation.String()
	child := childForRef(ctx, target, base)
	child.VisitedRefs = markVisited(ctx.VisitedRefs, visitKey)

	nested := drive(target, child)
	out := &Result{
		Keyword:          "$recursiveRef",
		InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation,
		AbsoluteLocation: ctx.absoluteLocation(),
		IsValid:          nested.AllValid(),
		Nested:           []*Result{nested},
	}
	if out.IsValid {
		ctx.Merge(child)
	}
	return out
}

// DefsKeyword implements the $defs/definitions schema containers: plain
// subschema bags with no direct bearing on is_valid, only reachable via
// $ref (spec.md §6).
type DefsKeyword struct {
	name    string
	entries map[string]*Document
	order   []string
}

func (k *DefsKeyword) Name() string { return k.name }
func (k *DefsKeyword) SupportedDrafts() DraftSet {
	if k.name == "$defs" {
		return DraftSet(Draft2019)
	}
	return DraftSet(Draft04 | Draft06 | Draft07)
}
func (k *DefsKeyword) Vocabulary() Vocabulary  { return VocabCore }
func (k *DefsKeyword) EvaluationSequence() int { return seqCore }

func (k *DefsKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("%s must be an object, got %T", k.name, value)
	}
	k.entries = make(map[string]*Document, len(obj))
	k.order = sortedKeys(obj)
	for _, name := range k.order {
		sub, err := parseAt(obj[name], &Options{DefaultDraft: doc.Draft}, k.name+"/"+name, doc.Draft)
		if err != nil {
			return err
		}
		k.entries[name] = sub
	}
	return nil
}

func (k *DefsKeyword) ToJSON() any {
	out := make(map[string]any, len(k.entries))
	for name, sub := range k.entries {
		out[name] = sub.ToJSON()
	}
	return out
}

func (k *DefsKeyword) Validate(ctx *Context) *Result {
	return valid(k.name, ctx)
}

func (k *DefsKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	for _, name := range k.order {
		k.entries[name].RegisterSubschemas(baseURI, reg)
	}
}

func (k *DefsKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	sub, ok := k.entries[segs[0]]
	if !ok {
		return nil, false
	}
	return sub.ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

func (k *DefsKeyword) Equals(other Keyword) bool {
	o, ok := other.(*DefsKeyword)
	if !ok || o.name != k.name || len(o.entries) != len(k.entries) {
		return false
	}
	for name, sub := range k.entries {
		os, ok := o.entries[name]
		if !ok || !deepEqualAny(sub.ToJSON(), os.ToJSON()) {
			return false
		}
	}
	return true
}
