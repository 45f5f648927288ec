package schema

import "github.com/dlovans/verita/internal/pointer"

// Context is spec.md §3's ValidationContext: the ephemeral, per-frame state
// threaded through one recursive validation call.
type Context struct {
	Instance               any
	InstanceLocation       pointer.Pointer
	BaseURI                string
	RelativeLocation       pointer.Pointer
	BaseRelativeLocation   *pointer.Pointer // nil once crossed a $ref to an unknown-absolute-id schema
	LocalRegistry          *Local
	RecursiveAnchor        string // dynamic scope base URI for $recursiveRef; "" if none declared
	Annotations            map[string]Annotation
	EvaluatedProperties    map[string]struct{}
	EvaluatedItems         int
	VisitedRefs            map[string]struct{} // keyed by absolute-uri + "@" + instance-location; each $ref hands its child a copy with its own key added
	DynamicScope           []*Document // schemas entered so far, outermost first; used by $recursiveRef
	Options                *Options
}

// rootContext builds the ValidationContext for Document.Validate's entry
// point (spec.md §4.1 "Validate(instance)").
func rootContext(doc *Document, instance any, opts *Options) *Context {
	base := ""
	if doc.DocumentPath != "" {
		base = doc.DocumentPath
	} else if doc.ID != "" {
		base = doc.ID
	}
	return &Context{
		Instance:             instance,
		InstanceLocation:     pointer.Root,
		BaseURI:              base,
		RelativeLocation:     pointer.Root,
		BaseRelativeLocation: &pointer.Root,
		LocalRegistry:        newLocal(),
		Annotations:          make(map[string]Annotation),
		EvaluatedProperties:  make(map[string]struct{}),
		VisitedRefs:          make(map[string]struct{}),
		DynamicScope:         []*Document{doc},
		Options:              opts,
	}
}

// Child returns a mutation-isolated clone positioned at a sub-instance
// (spec.md §3 "Ownership: a child context is a mutation-isolated clone of
// its parent").
func (c *Context) Child(instance any, instanceSeg, relativeSeg string) *Context {
	child := &Context{
		Instance:            instance,
		InstanceLocation:    c.InstanceLocation,
		BaseURI:             c.BaseURI,
		RelativeLocation:    c.RelativeLocation,
		LocalRegistry:       c.LocalRegistry,
		RecursiveAnchor:     c.RecursiveAnchor,
		Annotations:         make(map[string]Annotation),
		EvaluatedProperties: make(map[string]struct{}),
		EvaluatedItems:      0,
		VisitedRefs:         c.VisitedRefs,
		DynamicScope:        c.DynamicScope,
		Options:             c.Options,
	}
	if instanceSeg != "" {
		child.InstanceLocation = c.InstanceLocation.Append(instanceSeg)
	}
	if relativeSeg != "" {
		child.RelativeLocation = c.RelativeLocation.Append(relativeSeg)
	}
	if c.BaseRelativeLocation != nil {
		rel := *c.BaseRelativeLocation
		if relativeSeg != "" {
			rel = c.BaseRelativeLocation.Append(relativeSeg)
		}
		child.BaseRelativeLocation = &rel
	}
	return child
}

// WithElement returns a context positioned at one array element, used by
// contains/items-style keywords that evaluate a sub-schema per element.
func (c *Context) WithElement(instance any, indexSeg string) *Context {
	return c.Child(instance, indexSeg, indexSeg)
}

// Merge folds a successful child's annotations back into the parent per
// spec.md §8 property 3: evaluated_properties/evaluated_items in the parent
// are supersets of their prior values after success, unchanged after
// failure. Callers must only call Merge when the child validated.
func (c *Context) Merge(child *Context) {
	for k := range child.EvaluatedProperties {
		c.EvaluatedProperties[k] = struct{}{}
	}
	if child.EvaluatedItems > c.EvaluatedItems {
		c.EvaluatedItems = child.EvaluatedItems
	}
}

// Annotate records a producer annotation under key (spec.md §4.1 table).
func (c *Context) Annotate(key string, a Annotation) {
	c.Annotations[key] = a
}

// Annotation looks up a previously recorded annotation.
func (c *Context) Annotation(key string) (Annotation, bool) {
	a, ok := c.Annotations[key]
	return a, ok
}

func (c *Context) absoluteLocation() string {
	if c.BaseRelativeLocation == nil {
		return ""
	}
	return c.BaseURI + "#" + c.BaseRelativeLocation.String()
}
