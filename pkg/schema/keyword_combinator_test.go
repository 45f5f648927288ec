package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlovans/verita/pkg/schema"
)

func TestAllOf(t *testing.T) {
	doc := mustParse(t, `{"allOf": [{"type": "number"}, {"minimum": 0}]}`)
	assert.True(t, doc.Validate(float64(5), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(-1), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("not a number", schema.DefaultOptions()).AllValid())
}

func TestAnyOf(t *testing.T) {
	doc := mustParse(t, `{"anyOf": [{"type": "string"}, {"type": "number"}]}`)
	assert.True(t, doc.Validate("x", schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(true, schema.DefaultOptions()).AllValid())
}

func TestOneOfExactlyOneMatch(t *testing.T) {
	doc := mustParse(t, `{"oneOf": [{"multipleOf": 5}, {"multipleOf": 3}]}`)
	assert.True(t, doc.Validate(float64(5), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(3), schema.DefaultOptions()).AllValid())
	// 15 is a multiple of both, so oneOf must reject it.
	assert.False(t, doc.Validate(float64(15), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(7), schema.DefaultOptions()).AllValid())
}

func TestNot(t *testing.T) {
	doc := mustParse(t, `{"not": {"type": "string"}}`)
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("x", schema.DefaultOptions()).AllValid())
}

func TestIfThenElse(t *testing.T) {
	raw := `{
		"if": {"properties": {"country": {"const": "US"}}, "required": ["country"]},
		"then": {"required": ["zip"]},
		"else": {"required": ["postal_code"]}
	}`
	doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft07)))
	assert.NoError(t, err)

	assert.True(t, doc.Validate(map[string]any{"country": "US", "zip": "10001"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"country": "US"}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(map[string]any{"country": "CA", "postal_code": "K1A"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"country": "CA"}, schema.DefaultOptions()).AllValid())
}

func TestIfWithoutElseLeavesNonMatchingInstanceAlone(t *testing.T) {
	raw := `{"if": {"type": "string"}, "then": {"minLength": 3}}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate("abc", schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("a", schema.DefaultOptions()).AllValid())
}
