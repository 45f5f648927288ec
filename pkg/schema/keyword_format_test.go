package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestFormatAssertionMode(t *testing.T) {
	doc := mustParse(t, `{"format": "ipv4"}`)
	opts := schema.NewOptions(schema.WithValidateFormat(true))
	assert.True(t, doc.Validate("10.0.0.1", opts).AllValid())
	assert.False(t, doc.Validate("not-an-ip", opts).AllValid())
}

func TestFormatAnnotationOnlyMode(t *testing.T) {
	doc := mustParse(t, `{"format": "ipv4"}`)
	opts := schema.NewOptions(schema.WithValidateFormat(false))
	assert.True(t, doc.Validate("not-an-ip", opts).AllValid())
}

func TestFormatUnknownRejectedByDefault(t *testing.T) {
	doc := mustParse(t, `{"format": "made-up-format"}`)
	opts := schema.NewOptions(schema.WithValidateFormat(true), schema.WithAllowUnknownFormats(false))
	assert.False(t, doc.Validate("anything", opts).AllValid())
}

func TestFormatUnknownAllowedWhenConfigured(t *testing.T) {
	doc := mustParse(t, `{"format": "made-up-format"}`)
	opts := schema.NewOptions(schema.WithValidateFormat(true), schema.WithAllowUnknownFormats(true))
	assert.True(t, doc.Validate("anything", opts).AllValid())
}

func TestFormatUUIDOnlyUnder2019(t *testing.T) {
	raw := `{"format": "uuid"}`
	draft07doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft07)))
	require.NoError(t, err)
	// "uuid" isn't in draft-07's format set, so validation against any draft
	// is gated by the document's own draft, not the option's default draft.
	opts := schema.NewOptions(schema.WithValidateFormat(true))
	assert.True(t, draft07doc.Validate("not-a-uuid-at-all", opts).AllValid())

	doc2019 := mustParse(t, raw)
	assert.False(t, doc2019.Validate("not-a-uuid-at-all", opts).AllValid())
	assert.True(t, doc2019.Validate("123e4567-e89b-12d3-a456-426614174000", opts).AllValid())
}

func TestFormatIgnoresNonStringInstance(t *testing.T) {
	doc := mustParse(t, `{"format": "email"}`)
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
}
