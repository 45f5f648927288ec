package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func mustParse(t *testing.T, raw string) *schema.Document {
	t.Helper()
	doc, err := schema.ParseBytes([]byte(raw), schema.DefaultOptions())
	require.NoError(t, err)
	return doc
}

func TestParseBooleanSchema(t *testing.T) {
	trueDoc := mustParse(t, `true`)
	falseDoc := mustParse(t, `false`)

	assert.True(t, trueDoc.Validate("anything", schema.DefaultOptions()).AllValid())
	assert.False(t, falseDoc.Validate("anything", schema.DefaultOptions()).AllValid())
}

func TestParseUnknownKeywordRoundTrips(t *testing.T) {
	doc := mustParse(t, `{"type": "string", "x-custom": {"nested": true}}`)
	out, ok := doc.ToJSON().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", out["type"])
	assert.Equal(t, map[string]any{"nested": true}, out["x-custom"])
}

func TestParseDefsAndDefinitionsTogetherAreNotADuplicate(t *testing.T) {
	_, err := schema.ParseBytes([]byte(`{"$defs": {}, "definitions": {}}`), schema.NewOptions(schema.WithDraft(schema.Draft2019)))
	// $defs is 2019-09-only and definitions is 04/06/07-only, so under 2019-09
	// "definitions" parses as an UnknownAnnotation rather than colliding.
	require.NoError(t, err)
}

func TestTypeKeyword(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		instance any
		want     bool
	}{
		{"string matches", `{"type": "string"}`, "hello", true},
		{"number rejected", `{"type": "string"}`, float64(1), false},
		{"integer satisfies number", `{"type": "number"}`, float64(3), true},
		{"integer type rejects float", `{"type": "integer"}`, 3.5, false},
		{"union type", `{"type": ["string", "null"]}`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.schema)
			result := doc.Validate(tt.instance, schema.DefaultOptions())
			assert.Equal(t, tt.want, result.AllValid())
		})
	}
}

func TestEnumAndConst(t *testing.T) {
	doc := mustParse(t, `{"enum": ["a", "b", 1]}`)
	assert.True(t, doc.Validate("a", schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("c", schema.DefaultOptions()).AllValid())

	constDoc := mustParse(t, `{"const": {"x": 1}}`)
	assert.True(t, constDoc.Validate(map[string]any{"x": float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, constDoc.Validate(map[string]any{"x": float64(2)}, schema.DefaultOptions()).AllValid())
}

func TestConstNotAvailableUnderDraft04(t *testing.T) {
	doc, err := schema.ParseBytes([]byte(`{"const": "x"}`), schema.NewOptions(schema.WithDraft(schema.Draft04)))
	require.NoError(t, err)
	// Under draft-04 "const" isn't in the catalog for that draft, so it
	// parses as an unknown annotation and never constrains the instance.
	assert.True(t, doc.Validate("anything else entirely", schema.DefaultOptions()).AllValid())
}

func TestFlagOutputShortCircuits(t *testing.T) {
	doc := mustParse(t, `{"type": "string", "minLength": 10, "pattern": "^[0-9]+$"}`)
	opts := schema.NewOptions(schema.WithOutputFormat(schema.OutputFlag))
	result := doc.Validate("short", opts)
	assert.False(t, result.AllValid())
	// Flag mode stops at the first failing keyword within one schema object:
	// type passes, minLength fails, and pattern (which would also fail) is
	// never evaluated.
	assert.Len(t, result.Nested, 2)
}

func TestVocabularyGatingDisablesKeyword(t *testing.T) {
	raw := `{
		"$schema": "https://json-schema.org/draft/2019-09/schema",
		"$vocabulary": {"https://json-schema.org/draft/2019-09/vocab/validation": false},
		"type": "string",
		"minLength": 10
	}`
	doc := mustParse(t, raw)
	// minLength belongs to the validation vocabulary, disabled above, so a
	// too-short string must still pass.
	assert.True(t, doc.Validate("short", schema.DefaultOptions()).AllValid())
}
