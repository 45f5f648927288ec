package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func findNested(t *testing.T, res *schema.Result, keyword string) *schema.Result {
	t.Helper()
	for _, n := range res.Nested {
		if n.Keyword == keyword {
			return n
		}
	}
	require.Failf(t, "keyword not found in result", "keyword %q", keyword)
	return nil
}

func TestMetadataKeywordsNeverFailAndAnnotate(t *testing.T) {
	raw := `{
		"title": "Widget",
		"description": "A widget",
		"default": 42,
		"examples": [1, 2, 3],
		"$comment": "internal note",
		"readOnly": true,
		"writeOnly": false,
		"deprecated": false
	}`
	doc := mustParse(t, raw)

	for _, instance := range []any{"anything", float64(1), nil, []any{1, 2}, map[string]any{"k": "v"}} {
		res := doc.Validate(instance, schema.DefaultOptions())
		assert.True(t, res.AllValid())

		title := findNested(t, res, "title")
		assert.True(t, title.HasAnnotationValue)
		assert.Equal(t, "Widget", title.AnnotationValue)

		def := findNested(t, res, "default")
		assert.True(t, def.HasAnnotationValue)
		assert.Equal(t, float64(42), def.AnnotationValue)

		readOnly := findNested(t, res, "readOnly")
		assert.Equal(t, true, readOnly.AnnotationValue)
	}
}

func TestMetadataKeywordsRoundTripThroughToJSON(t *testing.T) {
	raw := `{"title": "Widget", "examples": [1, 2, 3]}`
	doc := mustParse(t, raw)
	out, ok := doc.ToJSON().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Widget", out["title"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, out["examples"])
}
