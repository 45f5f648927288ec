package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestRefToLocalDefs2019(t *testing.T) {
	raw := `{
		"$defs": {"positiveInt": {"type": "integer", "minimum": 1}},
		"properties": {"count": {"$ref": "#/$defs/positiveInt"}}
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"count": float64(3)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"count": float64(0)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"count": "three"}, schema.DefaultOptions()).AllValid())
}

func TestRefToLocalDefinitionsDraft07(t *testing.T) {
	raw := `{
		"definitions": {"positiveInt": {"type": "integer", "minimum": 1}},
		"properties": {"count": {"$ref": "#/definitions/positiveInt"}}
	}`
	doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft07)))
	require.NoError(t, err)
	assert.True(t, doc.Validate(map[string]any{"count": float64(3)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"count": float64(0)}, schema.DefaultOptions()).AllValid())
}

func TestRefByIDAnchor(t *testing.T) {
	raw := `{
		"$id": "https://example.com/root.json",
		"$defs": {
			"node": {
				"$id": "https://example.com/node.json",
				"type": "object",
				"properties": {"value": {"type": "string"}}
			}
		},
		"properties": {"n": {"$ref": "https://example.com/node.json"}}
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate(map[string]any{"n": map[string]any{"value": "x"}}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(map[string]any{"n": map[string]any{"value": float64(1)}}, schema.DefaultOptions()).AllValid())
}

func TestRefUnresolvableFailsValidation(t *testing.T) {
	doc := mustParse(t, `{"$ref": "#/$defs/missing"}`)
	assert.False(t, doc.Validate("anything", schema.DefaultOptions()).AllValid())
}

func TestRecursiveRefSelfReferentialTree(t *testing.T) {
	raw := `{
		"$id": "https://example.com/tree.json",
		"$recursiveAnchor": true,
		"type": "object",
		"properties": {
			"children": {"type": "array", "items": {"$recursiveRef": "#"}}
		}
	}`
	doc := mustParse(t, raw)
	instance := map[string]any{
		"children": []any{
			map[string]any{"children": []any{}},
		},
	}
	assert.True(t, doc.Validate(instance, schema.DefaultOptions()).AllValid())

	bad := map[string]any{
		"children": []any{"not an object"},
	}
	assert.False(t, doc.Validate(bad, schema.DefaultOptions()).AllValid())
}
