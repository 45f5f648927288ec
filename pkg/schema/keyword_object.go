package schema

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/dlovans/verita/internal/pointer"
)

func init() {
	Builtin.Register("maxProperties", Descriptor{
		New: func() Keyword { return &MaxPropertiesKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqObjectBasic,
	})
	Builtin.Register("minProperties", Descriptor{
		New: func() Keyword { return &MinPropertiesKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqObjectBasic,
	})
	Builtin.Register("required", Descriptor{
		New: func() Keyword { return &RequiredKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabValidation, EvaluationSequence: seqObjectBasic,
	})
	Builtin.Register("properties", Descriptor{
		New: func() Keyword { return &PropertiesKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqProperties,
	})
	Builtin.Register("patternProperties", Descriptor{
		New: func() Keyword { return &PatternPropertiesKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqPatternProperties,
	})
	Builtin.Register("additionalProperties", Descriptor{
		New: func() Keyword { return &AdditionalPropertiesKeyword{} }, Drafts: AllDrafts,
		Vocabulary: VocabApplicator, EvaluationSequence: seqAdditionalProperties,
	})
	Builtin.Register("propertyNames", Descriptor{
		New: func() Keyword { return &PropertyNamesKeyword{} }, Drafts: DraftSet(Draft06 | Draft07 | Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqObjectBasic,
	})
	Builtin.Register("dependencies", Descriptor{
		New: func() Keyword { return &DependenciesKeyword{} }, Drafts: DraftSet(Draft04 | Draft06 | Draft07),
		Vocabulary: VocabApplicator, EvaluationSequence: seqDependencies,
	})
	Builtin.Register("dependentRequired", Descriptor{
		New: func() Keyword { return &DependentRequiredKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabValidation, EvaluationSequence: seqDependencies,
	})
	Builtin.Register("dependentSchemas", Descriptor{
		New: func() Keyword { return &DependentSchemasKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqDependencies,
	})
	Builtin.Register("unevaluatedProperties", Descriptor{
		New: func() Keyword { return &UnevaluatedPropertiesKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabApplicator, EvaluationSequence: seqUnevaluatedProperties,
	})
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

type MaxPropertiesKeyword struct {
	leaf
	bound int
}

func (k *MaxPropertiesKeyword) Name() string             { return "maxProperties" }
func (k *MaxPropertiesKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MaxPropertiesKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MaxPropertiesKeyword) EvaluationSequence() int   { return seqObjectBasic }
func (k *MaxPropertiesKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MaxPropertiesKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("maxProperties must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MaxPropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	if !ok || len(obj) <= k.bound {
		return valid("maxProperties", ctx)
	}
	return invalid("maxProperties", ctx, "object has {{actual}} properties, more than maxProperties {{bound}}", map[string]any{
		"actual": len(obj), "bound": k.bound,
	})
}

func (k *MaxPropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MaxPropertiesKeyword)
	return ok && o.bound == k.bound
}

type MinPropertiesKeyword struct {
	leaf
	bound int
}

func (k *MinPropertiesKeyword) Name() string             { return "minProperties" }
func (k *MinPropertiesKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *MinPropertiesKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *MinPropertiesKeyword) EvaluationSequence() int   { return seqObjectBasic }
func (k *MinPropertiesKeyword) ToJSON() any               { return float64(k.bound) }

func (k *MinPropertiesKeyword) FromJSON(value any, doc *Document) error {
	n, ok := asUint(value)
	if !ok {
		return fmt.Errorf("minProperties must be a non-negative integer, got %v", value)
	}
	k.bound = n
	return nil
}

func (k *MinPropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	if !ok || len(obj) >= k.bound {
		return valid("minProperties", ctx)
	}
	return invalid("minProperties", ctx, "object has {{actual}} properties, fewer than minProperties {{bound}}", map[string]any{
		"actual": len(obj), "bound": k.bound,
	})
}

func (k *MinPropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*MinPropertiesKeyword)
	return ok && o.bound == k.bound
}

// RequiredKeyword implements "required": every named property must be
// present (spec.md §6).
type RequiredKeyword struct {
	leaf
	names []string
}

func (k *RequiredKeyword) Name() string             { return "required" }
func (k *RequiredKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *RequiredKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *RequiredKeyword) EvaluationSequence() int   { return seqObjectBasic }

func (k *RequiredKeyword) FromJSON(value any, doc *Document) error {
	arr, ok := value.([]any)
	if !ok {
		return fmt.Errorf("required must be an array, got %T", value)
	}
	k.names = make([]string, 0, len(arr))
	for _, e := range arr {
		s, ok := e.(string)
		if !ok {
			return fmt.Errorf("required entries must be strings, got %T", e)
		}
		k.names = append(k.names, s)
	}
	return nil
}

func (k *RequiredKeyword) ToJSON() any {
	out := make([]any, len(k.names))
	for i, n := range k.names {
		out[i] = n
	}
	return out
}

func (k *RequiredKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	if !ok {
		return valid("required", ctx)
	}
	var missing []string
	for _, name := range k.names {
		if _, present := obj[name]; !present {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return valid("required", ctx)
	}
	return invalid("required", ctx, "object is missing required properties: {{missing}}", map[string]any{
		"missing": missing,
	})
}

func (k *RequiredKeyword) Equals(other Keyword) bool {
	o, ok := other.(*RequiredKeyword)
	if !ok || len(o.names) != len(k.names) {
		return false
	}
	for i := range k.names {
		if k.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

// PropertiesKeyword implements "properties": validates each named
// sub-instance against its schema and publishes the matched name set for
// additionalProperties/unevaluatedProperties to read (spec.md §4.1 table).
type PropertiesKeyword struct {
	names  []string
	schema map[string]*Document
}

func (k *PropertiesKeyword) Name() string             { return "properties" }
func (k *PropertiesKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *PropertiesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *PropertiesKeyword) EvaluationSequence() int   { return seqProperties }

func (k *PropertiesKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("properties must be an object, got %T", value)
	}
	k.names = sortedKeys(obj)
	k.schema = make(map[string]*Document, len(obj))
	for _, name := range k.names {
		sub, err := parseAt(obj[name], nil, "properties/"+name, doc.Draft)
		if err != nil {
			return err
		}
		k.schema[name] = sub
	}
	return nil
}

func (k *PropertiesKeyword) ToJSON() any {
	out := make(map[string]any, len(k.schema))
	for name, sub := range k.schema {
		out[name] = sub.ToJSON()
	}
	return out
}

func (k *PropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "properties", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	matched := make(map[string]struct{})
	for _, name := range k.names {
		v, present := obj[name]
		if !present {
			continue
		}
		child := ctx.Child(v, name, name)
		nested := drive(k.schema[name], child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
			continue
		}
		ctx.Merge(child)
		matched[name] = struct{}{}
	}
	for name := range matched {
		ctx.EvaluatedProperties[name] = struct{}{}
	}
	ctx.Annotate("__propertiesMatched", stringSetAnnotation(matched))
	return out
}

func stringSetAnnotation(m map[string]struct{}) Annotation {
	return Annotation{Kind: AnnotationStringSet, StringSet: m}
}

func (k *PropertiesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	for _, name := range k.names {
		k.schema[name].RegisterSubschemas(baseURI, reg)
	}
}

func (k *PropertiesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	sub, ok := k.schema[segs[0]]
	if !ok {
		return nil, false
	}
	return sub.ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

func (k *PropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*PropertiesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// PatternPropertiesKeyword implements "patternProperties": every property
// whose name matches a pattern is validated against that pattern's schema;
// a name may match (and be validated against) several patterns.
type PatternPropertiesKeyword struct {
	patterns []string
	regexes  []*regexp2.Regexp
	schemas  []*Document
}

func (k *PatternPropertiesKeyword) Name() string             { return "patternProperties" }
func (k *PatternPropertiesKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *PatternPropertiesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *PatternPropertiesKeyword) EvaluationSequence() int   { return seqPatternProperties }

func (k *PatternPropertiesKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("patternProperties must be an object, got %T", value)
	}
	names := sortedKeys(obj)
	for _, pat := range names {
		re, err := regexp2.Compile(pat, regexp2.ECMAScript)
		if err != nil {
			return fmt.Errorf("patternProperties key %q is not a valid regular expression: %w", pat, err)
		}
		sub, err := parseAt(obj[pat], nil, "patternProperties/"+pat, doc.Draft)
		if err != nil {
			return err
		}
		k.patterns = append(k.patterns, pat)
		k.regexes = append(k.regexes, re)
		k.schemas = append(k.schemas, sub)
	}
	return nil
}

func (k *PatternPropertiesKeyword) ToJSON() any {
	out := make(map[string]any, len(k.patterns))
	for i, pat := range k.patterns {
		out[pat] = k.schemas[i].ToJSON()
	}
	return out
}

func (k *PatternPropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "patternProperties", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	matched := make(map[string]struct{})
	for _, name := range sortedKeys(obj) {
		for i, re := range k.regexes {
			m, err := re.MatchString(name)
			if err != nil || !m {
				continue
			}
			child := ctx.Child(obj[name], name, name)
			nested := drive(k.schemas[i], child)
			out.Nested = append(out.Nested, nested)
			if !nested.AllValid() {
				out.IsValid = false
				continue
			}
			ctx.Merge(child)
			matched[name] = struct{}{}
		}
	}
	for name := range matched {
		ctx.EvaluatedProperties[name] = struct{}{}
	}
	ctx.Annotate("__patternPropertiesMatched", stringSetAnnotation(matched))
	return out
}

func (k *PatternPropertiesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	for _, s := range k.schemas {
		s.RegisterSubschemas(baseURI, reg)
	}
}

func (k *PatternPropertiesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	for i, pat := range k.patterns {
		if pat == segs[0] {
			return k.schemas[i].ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
		}
	}
	return nil, false
}

func (k *PatternPropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*PatternPropertiesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// AdditionalPropertiesKeyword implements "additionalProperties": applied to
// every property name not matched by a sibling properties/patternProperties
// (spec.md §6, §4.1 table).
type AdditionalPropertiesKeyword struct {
	schema *Document
}

func (k *AdditionalPropertiesKeyword) Name() string             { return "additionalProperties" }
func (k *AdditionalPropertiesKeyword) SupportedDrafts() DraftSet { return AllDrafts }
func (k *AdditionalPropertiesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *AdditionalPropertiesKeyword) EvaluationSequence() int   { return seqAdditionalProperties }

func (k *AdditionalPropertiesKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "additionalProperties", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *AdditionalPropertiesKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *AdditionalPropertiesKeyword) claimedNames(ctx *Context) map[string]struct{} {
	claimed := make(map[string]struct{})
	if a, ok := ctx.Annotation("__propertiesMatched"); ok {
		for n := range a.StringSet {
			claimed[n] = struct{}{}
		}
	}
	if a, ok := ctx.Annotation("__patternPropertiesMatched"); ok {
		for n := range a.StringSet {
			claimed[n] = struct{}{}
		}
	}
	return claimed
}

func (k *AdditionalPropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "additionalProperties", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	claimed := k.claimedNames(ctx)
	matched := make(map[string]struct{})
	for _, name := range sortedKeys(obj) {
		if _, done := claimed[name]; done {
			continue
		}
		child := ctx.Child(obj[name], name, name)
		nested := drive(k.schema, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
			continue
		}
		ctx.Merge(child)
		matched[name] = struct{}{}
	}
	for name := range matched {
		ctx.EvaluatedProperties[name] = struct{}{}
	}
	return out
}

func (k *AdditionalPropertiesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *AdditionalPropertiesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *AdditionalPropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*AdditionalPropertiesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// PropertyNamesKeyword implements "propertyNames" (06+): every property
// name, treated as a string instance, must validate against the schema.
type PropertyNamesKeyword struct {
	schema *Document
}

func (k *PropertyNamesKeyword) Name() string             { return "propertyNames" }
func (k *PropertyNamesKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft06 | Draft07 | Draft2019) }
func (k *PropertyNamesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *PropertyNamesKeyword) EvaluationSequence() int   { return seqObjectBasic }

func (k *PropertyNamesKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "propertyNames", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *PropertyNamesKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *PropertyNamesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "propertyNames", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	for _, name := range sortedKeys(obj) {
		child := ctx.Child(name, name, name)
		nested := drive(k.schema, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		}
	}
	return out
}

func (k *PropertyNamesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *PropertyNamesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *PropertyNamesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*PropertyNamesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// DependenciesKeyword implements draft-04/06/07's "dependencies": per
// property name, either an array of required co-properties or a schema the
// whole object must satisfy when that property is present.
type DependenciesKeyword struct {
	names     []string
	required  map[string][]string
	schemas   map[string]*Document
}

func (k *DependenciesKeyword) Name() string             { return "dependencies" }
func (k *DependenciesKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft04 | Draft06 | Draft07) }
func (k *DependenciesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *DependenciesKeyword) EvaluationSequence() int   { return seqDependencies }

func (k *DependenciesKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("dependencies must be an object, got %T", value)
	}
	k.names = sortedKeys(obj)
	k.required = make(map[string][]string)
	k.schemas = make(map[string]*Document)
	for _, name := range k.names {
		switch v := obj[name].(type) {
		case []any:
			reqs := make([]string, 0, len(v))
			for _, e := range v {
				s, ok := e.(string)
				if !ok {
					return fmt.Errorf("dependencies[%q] entries must be strings, got %T", name, e)
				}
				reqs = append(reqs, s)
			}
			k.required[name] = reqs
		default:
			sub, err := parseAt(v, nil, "dependencies/"+name, doc.Draft)
			if err != nil {
				return err
			}
			k.schemas[name] = sub
		}
	}
	return nil
}

func (k *DependenciesKeyword) ToJSON() any {
	out := make(map[string]any, len(k.names))
	for _, name := range k.names {
		if reqs, ok := k.required[name]; ok {
			arr := make([]any, len(reqs))
			for i, r := range reqs {
				arr[i] = r
			}
			out[name] = arr
			continue
		}
		out[name] = k.schemas[name].ToJSON()
	}
	return out
}

func (k *DependenciesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "dependencies", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	for _, name := range k.names {
		if _, present := obj[name]; !present {
			continue
		}
		if reqs, isReq := k.required[name]; isReq {
			var missing []string
			for _, r := range reqs {
				if _, ok := obj[r]; !ok {
					missing = append(missing, r)
				}
			}
			if len(missing) > 0 {
				out.IsValid = false
				out.Nested = append(out.Nested, invalid("dependencies", ctx,
					"property {{name}} requires {{missing}} to also be present", map[string]any{
						"name": name, "missing": missing,
					}))
			}
			continue
		}
		child := ctx.Child(ctx.Instance, "", "")
		nested := drive(k.schemas[name], child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		} else {
			ctx.Merge(child)
		}
	}
	return out
}

func (k *DependenciesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	for _, s := range k.schemas {
		s.RegisterSubschemas(baseURI, reg)
	}
}

func (k *DependenciesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	sub, ok := k.schemas[segs[0]]
	if !ok {
		return nil, false
	}
	return sub.ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

func (k *DependenciesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*DependenciesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// DependentRequiredKeyword implements 2019-09's "dependentRequired", the
// array-only half of draft-04..07's "dependencies" split into its own
// keyword.
type DependentRequiredKeyword struct {
	leaf
	required map[string][]string
	names    []string
}

func (k *DependentRequiredKeyword) Name() string             { return "dependentRequired" }
func (k *DependentRequiredKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *DependentRequiredKeyword) Vocabulary() Vocabulary    { return VocabValidation }
func (k *DependentRequiredKeyword) EvaluationSequence() int   { return seqDependencies }

func (k *DependentRequiredKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("dependentRequired must be an object, got %T", value)
	}
	k.names = sortedKeys(obj)
	k.required = make(map[string][]string, len(obj))
	for _, name := range k.names {
		arr, ok := obj[name].([]any)
		if !ok {
			return fmt.Errorf("dependentRequired[%q] must be an array, got %T", name, obj[name])
		}
		reqs := make([]string, 0, len(arr))
		for _, e := range arr {
			s, ok := e.(string)
			if !ok {
				return fmt.Errorf("dependentRequired[%q] entries must be strings, got %T", name, e)
			}
			reqs = append(reqs, s)
		}
		k.required[name] = reqs
	}
	return nil
}

func (k *DependentRequiredKeyword) ToJSON() any {
	out := make(map[string]any, len(k.names))
	for _, name := range k.names {
		arr := make([]any, len(k.required[name]))
		for i, r := range k.required[name] {
			arr[i] = r
		}
		out[name] = arr
	}
	return out
}

func (k *DependentRequiredKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	if !ok {
		return valid("dependentRequired", ctx)
	}
	for _, name := range k.names {
		if _, present := obj[name]; !present {
			continue
		}
		var missing []string
		for _, r := range k.required[name] {
			if _, ok := obj[r]; !ok {
				missing = append(missing, r)
			}
		}
		if len(missing) > 0 {
			return invalid("dependentRequired", ctx, "property {{name}} requires {{missing}} to also be present", map[string]any{
				"name": name, "missing": missing,
			})
		}
	}
	return valid("dependentRequired", ctx)
}

func (k *DependentRequiredKeyword) Equals(other Keyword) bool {
	o, ok := other.(*DependentRequiredKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// DependentSchemasKeyword implements 2019-09's "dependentSchemas", the
// schema-only half of draft-04..07's "dependencies" split into its own
// keyword.
type DependentSchemasKeyword struct {
	names   []string
	schemas map[string]*Document
}

func (k *DependentSchemasKeyword) Name() string             { return "dependentSchemas" }
func (k *DependentSchemasKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *DependentSchemasKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *DependentSchemasKeyword) EvaluationSequence() int   { return seqDependencies }

func (k *DependentSchemasKeyword) FromJSON(value any, doc *Document) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("dependentSchemas must be an object, got %T", value)
	}
	k.names = sortedKeys(obj)
	k.schemas = make(map[string]*Document, len(obj))
	for _, name := range k.names {
		sub, err := parseAt(obj[name], nil, "dependentSchemas/"+name, doc.Draft)
		if err != nil {
			return err
		}
		k.schemas[name] = sub
	}
	return nil
}

func (k *DependentSchemasKeyword) ToJSON() any {
	out := make(map[string]any, len(k.names))
	for _, name := range k.names {
		out[name] = k.schemas[name].ToJSON()
	}
	return out
}

func (k *DependentSchemasKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "dependentSchemas", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	for _, name := range k.names {
		if _, present := obj[name]; !present {
			continue
		}
		child := ctx.Child(ctx.Instance, "", "")
		nested := drive(k.schemas[name], child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
		} else {
			ctx.Merge(child)
		}
	}
	return out
}

func (k *DependentSchemasKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	for _, s := range k.schemas {
		s.RegisterSubschemas(baseURI, reg)
	}
}

func (k *DependentSchemasKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, false
	}
	sub, ok := k.schemas[segs[0]]
	if !ok {
		return nil, false
	}
	return sub.ResolveSubschema(pointer.Pointer{}.Append(segs[1:]...))
}

func (k *DependentSchemasKeyword) Equals(other Keyword) bool {
	o, ok := other.(*DependentSchemasKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}

// UnevaluatedPropertiesKeyword implements 2019-09's "unevaluatedProperties":
// applied to every property not already in the context's evaluated set,
// which properties/patternProperties/additionalProperties fill and which
// successful subschemas (allOf/anyOf/oneOf/if/then/else/$ref) merge back into
// (spec.md §6, §8 property 3).
type UnevaluatedPropertiesKeyword struct {
	schema *Document
}

func (k *UnevaluatedPropertiesKeyword) Name() string             { return "unevaluatedProperties" }
func (k *UnevaluatedPropertiesKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *UnevaluatedPropertiesKeyword) Vocabulary() Vocabulary    { return VocabApplicator }
func (k *UnevaluatedPropertiesKeyword) EvaluationSequence() int   { return seqUnevaluatedProperties }

func (k *UnevaluatedPropertiesKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "unevaluatedProperties", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *UnevaluatedPropertiesKeyword) ToJSON() any { return k.schema.ToJSON() }

func (k *UnevaluatedPropertiesKeyword) Validate(ctx *Context) *Result {
	obj, ok := asObject(ctx.Instance)
	out := &Result{Keyword: "unevaluatedProperties", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(), IsValid: true}
	if !ok {
		return out
	}
	for _, name := range sortedKeys(obj) {
		if _, done := ctx.EvaluatedProperties[name]; done {
			continue
		}
		child := ctx.Child(obj[name], name, name)
		nested := drive(k.schema, child)
		out.Nested = append(out.Nested, nested)
		if !nested.AllValid() {
			out.IsValid = false
			continue
		}
		ctx.Merge(child)
		ctx.EvaluatedProperties[name] = struct{}{}
	}
	return out
}

func (k *UnevaluatedPropertiesKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *UnevaluatedPropertiesKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *UnevaluatedPropertiesKeyword) Equals(other Keyword) bool {
	o, ok := other.(*UnevaluatedPropertiesKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}
