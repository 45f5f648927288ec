package schema

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dlovans/verita/internal/pointer"
)

func init() {
	Builtin.Register("contentEncoding", Descriptor{
		New: func() Keyword { return &ContentEncodingKeyword{} }, Drafts: DraftSet(Draft07 | Draft2019),
		Vocabulary: VocabContent, EvaluationSequence: seqContent,
	})
	Builtin.Register("contentMediaType", Descriptor{
		New: func() Keyword { return &ContentMediaTypeKeyword{} }, Drafts: DraftSet(Draft07 | Draft2019),
		Vocabulary: VocabContent, EvaluationSequence: seqContent,
	})
	Builtin.Register("contentSchema", Descriptor{
		New: func() Keyword { return &ContentSchemaKeyword{} }, Drafts: DraftSet(Draft2019),
		Vocabulary: VocabContent, EvaluationSequence: seqContent,
	})
}

// decodeContent applies the named contentEncoding, returning the decoded
// bytes. Unknown encodings (and the absence of one) pass the raw string
// through unchanged, matching spec.md §6's "contentEncoding: annotation
// unless Options.ValidateContent".
func decodeContent(encoding, s string) ([]byte, error) {
	switch encoding {
	case "base64":
		return base64.StdEncoding.DecodeString(s)
	case "base32":
		return base32.StdEncoding.DecodeString(s)
	case "quoted-printable", "7bit", "8bit", "binary", "":
		return []byte(s), nil
	default:
		return []byte(s), nil
	}
}

// ContentEncodingKeyword implements "contentEncoding" (07+). When
// Options.ValidateContent is set, a non-decodable value fails; otherwise
// it is a pure annotation (spec.md §6, §9: "content* keywords: off by
// default, since most consumers don't want string payload parsing on by
// default").
type ContentEncodingKeyword struct {
	leaf
	encoding string
}

func (k *ContentEncodingKeyword) Name() string             { return "contentEncoding" }
func (k *ContentEncodingKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft07 | Draft2019) }
func (k *ContentEncodingKeyword) Vocabulary() Vocabulary    { return VocabContent }
func (k *ContentEncodingKeyword) EvaluationSequence() int   { return seqContent }
func (k *ContentEncodingKeyword) ToJSON() any               { return k.encoding }

func (k *ContentEncodingKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("contentEncoding must be a string, got %T", value)
	}
	k.encoding = s
	return nil
}

func (k *ContentEncodingKeyword) Validate(ctx *Context) *Result {
	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("contentEncoding", ctx).withAnnotation(k.encoding)
	}
	_, err := decodeContent(k.encoding, s)
	if err != nil && ctx.Options.ValidateContent {
		return invalid("contentEncoding", ctx, "value is not valid {{encoding}}", map[string]any{"encoding": k.encoding})
	}
	return valid("contentEncoding", ctx).withAnnotation(k.encoding)
}

func (k *ContentEncodingKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ContentEncodingKeyword)
	return ok && o.encoding == k.encoding
}

// ContentMediaTypeKeyword implements "contentMediaType" (07+): when
// Options.ValidateContent is set and the media type is application/json,
// the string instance itself must parse as JSON; a sibling contentEncoding
// is not applied first.
type ContentMediaTypeKeyword struct {
	leaf
	mediaType string
}

func (k *ContentMediaTypeKeyword) Name() string             { return "contentMediaType" }
func (k *ContentMediaTypeKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft07 | Draft2019) }
func (k *ContentMediaTypeKeyword) Vocabulary() Vocabulary    { return VocabContent }
func (k *ContentMediaTypeKeyword) EvaluationSequence() int   { return seqContent }
func (k *ContentMediaTypeKeyword) ToJSON() any               { return k.mediaType }

func (k *ContentMediaTypeKeyword) FromJSON(value any, doc *Document) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("contentMediaType must be a string, got %T", value)
	}
	k.mediaType = s
	return nil
}

func (k *ContentMediaTypeKeyword) Validate(ctx *Context) *Result {
	s, ok := ctx.Instance.(string)
	if !ok {
		return valid("contentMediaType", ctx).withAnnotation(k.mediaType)
	}
	if !ctx.Options.ValidateContent {
		return valid("contentMediaType", ctx).withAnnotation(k.mediaType)
	}
	if strings.EqualFold(k.mediaType, "application/json") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			return invalid("contentMediaType", ctx, "value is not valid {{mediaType}}", map[string]any{"mediaType": k.mediaType})
		}
		ctx.Annotate("__contentDecoded", StringAnnotation(s))
	}
	return valid("contentMediaType", ctx).withAnnotation(k.mediaType)
}

func (k *ContentMediaTypeKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ContentMediaTypeKeyword)
	return ok && o.mediaType == k.mediaType
}

// ContentSchemaKeyword implements 2019-09's "contentSchema": when
// Options.ValidateContent is set and a sibling contentMediaType decoded the
// string as application/json, the decoded value is validated against this
// schema (spec.md §6).
type ContentSchemaKeyword struct {
	schema *Document
}

func (k *ContentSchemaKeyword) Name() string             { return "contentSchema" }
func (k *ContentSchemaKeyword) SupportedDrafts() DraftSet { return DraftSet(Draft2019) }
func (k *ContentSchemaKeyword) Vocabulary() Vocabulary    { return VocabContent }
func (k *ContentSchemaKeyword) EvaluationSequence() int   { return seqContent + 1 }
func (k *ContentSchemaKeyword) ToJSON() any               { return k.schema.ToJSON() }

func (k *ContentSchemaKeyword) FromJSON(value any, doc *Document) error {
	sub, err := parseAt(value, nil, "contentSchema", doc.Draft)
	if err != nil {
		return err
	}
	k.schema = sub
	return nil
}

func (k *ContentSchemaKeyword) Validate(ctx *Context) *Result {
	if !ctx.Options.ValidateContent {
		return valid("contentSchema", ctx)
	}
	a, present := ctx.Annotation("__contentDecoded")
	if !present {
		return valid("contentSchema", ctx)
	}
	var v any
	if err := json.Unmarshal([]byte(a.String), &v); err != nil {
		return valid("contentSchema", ctx)
	}
	child := ctx.Child(v, "", "")
	nested := drive(k.schema, child)
	if !nested.AllValid() {
		return &Result{Keyword: "contentSchema", InstanceLocation: ctx.InstanceLocation,
			RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
			IsValid: false, Nested: []*Result{nested}}
	}
	return &Result{Keyword: "contentSchema", InstanceLocation: ctx.InstanceLocation,
		RelativeLocation: ctx.RelativeLocation, AbsoluteLocation: ctx.absoluteLocation(),
		IsValid: true, Nested: []*Result{nested}}
}

func (k *ContentSchemaKeyword) RegisterSubschemas(baseURI string, reg *Local) {
	k.schema.RegisterSubschemas(baseURI, reg)
}

func (k *ContentSchemaKeyword) ResolveSubschema(p pointer.Pointer) (*Document, bool) {
	return k.schema.ResolveSubschema(p)
}

func (k *ContentSchemaKeyword) Equals(other Keyword) bool {
	o, ok := other.(*ContentSchemaKeyword)
	return ok && deepEqualAny(k.ToJSON(), o.ToJSON())
}
