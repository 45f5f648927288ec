package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlovans/verita/pkg/schema"
)

func TestContentEncodingAnnotationOnlyByDefault(t *testing.T) {
	doc := mustParse(t, `{"contentEncoding": "base64"}`)
	// Options.ValidateContent defaults to off, so even invalid base64 passes.
	assert.True(t, doc.Validate("not-valid-base64!!", schema.DefaultOptions()).AllValid())
}

func TestContentEncodingAssertsWhenEnabled(t *testing.T) {
	doc := mustParse(t, `{"contentEncoding": "base64"}`)
	opts := schema.NewOptions(schema.WithValidateContent(true))
	assert.True(t, doc.Validate("aGVsbG8=", opts).AllValid())
	assert.False(t, doc.Validate("not-valid-base64!!", opts).AllValid())
}

func TestContentMediaTypeAndSchema2019(t *testing.T) {
	raw := `{
		"contentMediaType": "application/json",
		"contentSchema": {"type": "object", "required": ["name"]}
	}`
	doc := mustParse(t, raw)
	opts := schema.NewOptions(schema.WithValidateContent(true))
	assert.True(t, doc.Validate(`{"name": "ok"}`, opts).AllValid())
	assert.False(t, doc.Validate(`{"other": true}`, opts).AllValid())
	assert.False(t, doc.Validate(`not json`, opts).AllValid())
}

func TestContentMediaTypeIgnoredWithoutValidateContent(t *testing.T) {
	doc := mustParse(t, `{"contentMediaType": "application/json"}`)
	assert.True(t, doc.Validate(`not json at all`, schema.DefaultOptions()).AllValid())
}
