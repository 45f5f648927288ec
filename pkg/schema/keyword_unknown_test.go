package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestUnknownKeywordNeverAffectsValidity(t *testing.T) {
	raw := `{"type": "string", "x-custom-vendor-extension": {"nested": true}}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate("hello", schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
}

func TestUnknownKeywordAnnotatesAndRoundTrips(t *testing.T) {
	raw := `{"x-custom": {"a": 1, "b": [true, false]}}`
	doc := mustParse(t, raw)
	res := doc.Validate("anything", schema.DefaultOptions())
	require.True(t, res.AllValid())

	found := findNested(t, res, "x-custom")
	assert.True(t, found.HasAnnotationValue)

	out, ok := doc.ToJSON().(map[string]any)
	require.True(t, ok)
	custom, ok := out["x-custom"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), custom["a"])
	assert.Equal(t, []any{true, false}, custom["b"])
}
