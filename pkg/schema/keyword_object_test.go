package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestObjectBasicBounds(t *testing.T) {
	doc := mustParse(t, `{"minProperties": 1, "maxProperties": 2, "required": ["a"]}`)
	assert.False(t, doc.Validate(map[string]any{}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(map[string]any{"a": float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"b": float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"a": 1, "b": 2, "c": 3}, schema.DefaultOptions()).AllValid())
}

func TestPropertiesAndAdditionalProperties(t *testing.T) {
	raw := `{
		"properties": {"name": {"type": "string"}},
		"additionalProperties": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"name": "ok"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"name": "ok", "extra": true}, schema.DefaultOptions()).AllValid())
}

func TestPatternPropertiesClaimsNameForAdditionalProperties(t *testing.T) {
	raw := `{
		"patternProperties": {"^x-": {"type": "string"}},
		"additionalProperties": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"x-foo": "ok"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"x-foo": float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"other": "ok"}, schema.DefaultOptions()).AllValid())
}

func TestPropertyNamesAppliesToEveryKey(t *testing.T) {
	doc := mustParse(t, `{"propertyNames": {"pattern": "^[a-z]+$"}}`)
	assert.True(t, doc.Validate(map[string]any{"abc": 1}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"ABC": 1}, schema.DefaultOptions()).AllValid())
}

func TestDependenciesDraft07ArrayAndSchemaForms(t *testing.T) {
	raw := `{
		"dependencies": {
			"credit_card": ["billing_address"],
			"has_pet": {"required": ["pet_name"]}
		}
	}`
	doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft07)))
	require.NoError(t, err)

	assert.True(t, doc.Validate(map[string]any{}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"credit_card": "4111"}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(map[string]any{"credit_card": "4111", "billing_address": "x"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"has_pet": true}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(map[string]any{"has_pet": true, "pet_name": "Rex"}, schema.DefaultOptions()).AllValid())
}

func TestDependentRequiredAndDependentSchemas2019(t *testing.T) {
	raw := `{
		"dependentRequired": {"credit_card": ["billing_address"]},
		"dependentSchemas": {"has_pet": {"required": ["pet_name"]}}
	}`
	doc := mustParse(t, raw)
	assert.False(t, doc.Validate(map[string]any{"credit_card": "4111"}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(map[string]any{"credit_card": "4111", "billing_address": "x"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"has_pet": true}, schema.DefaultOptions()).AllValid())
}

func TestUnevaluatedPropertiesAfterProperties(t *testing.T) {
	raw := `{
		"properties": {"name": {"type": "string"}},
		"unevaluatedProperties": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"name": "ok"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"name": "ok", "extra": true}, schema.DefaultOptions()).AllValid())
}

func TestUnevaluatedPropertiesSeesPropertiesClaimedByAllOfBranch(t *testing.T) {
	raw := `{
		"allOf": [{"properties": {"a": {}}}],
		"unevaluatedProperties": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"a": float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"a": float64(1), "b": float64(2)}, schema.DefaultOptions()).AllValid())
}

func TestUnevaluatedPropertiesSeesPropertiesClaimedByIfThenBranch(t *testing.T) {
	raw := `{
		"if": {"required": ["a"]},
		"then": {"properties": {"a": {}, "b": {}}},
		"unevaluatedProperties": false
	}`
	doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft2019)))
	require.NoError(t, err)
	assert.True(t, doc.Validate(map[string]any{"a": float64(1), "b": float64(2)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"a": float64(1), "c": float64(3)}, schema.DefaultOptions()).AllValid())
}
