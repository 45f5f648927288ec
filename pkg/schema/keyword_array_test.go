package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlovans/verita/pkg/schema"
)

func TestArrayBasicBounds(t *testing.T) {
	doc := mustParse(t, `{"minItems": 1, "maxItems": 2, "uniqueItems": true}`)
	assert.False(t, doc.Validate([]any{}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate([]any{"a"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{"a", "a"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{"a", "b", "c"}, schema.DefaultOptions()).AllValid())
}

func TestItemsListForm(t *testing.T) {
	doc := mustParse(t, `{"items": {"type": "number"}}`)
	assert.True(t, doc.Validate([]any{float64(1), float64(2)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{float64(1), "two"}, schema.DefaultOptions()).AllValid())
}

func TestItemsTupleFormWithAdditionalItems(t *testing.T) {
	raw := `{
		"items": [{"type": "string"}, {"type": "number"}],
		"additionalItems": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate([]any{"a", float64(1)}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{"a", float64(1), "extra"}, schema.DefaultOptions()).AllValid())
}

func TestContainsWithMinMaxContains(t *testing.T) {
	raw := `{"contains": {"type": "number"}, "minContains": 2, "maxContains": 3}`
	doc := mustParse(t, raw)
	assert.False(t, doc.Validate([]any{float64(1), "x", "y"}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate([]any{float64(1), float64(2), "y"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{float64(1), float64(2), float64(3), float64(4)}, schema.DefaultOptions()).AllValid())
}

func TestContainsWithMinContainsZeroAllowsNoMatches(t *testing.T) {
	raw := `{"contains": {"const": 7}, "minContains": 0}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate([]any{float64(1), float64(2), float64(3)}, schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate([]any{}, schema.DefaultOptions()).AllValid())
	// A match still satisfies it too.
	assert.True(t, doc.Validate([]any{float64(7)}, schema.DefaultOptions()).AllValid())
}

func TestUnevaluatedItemsAfterTuple(t *testing.T) {
	raw := `{
		"items": [{"type": "string"}],
		"unevaluatedItems": false
	}`
	doc := mustParse(t, raw)
	assert.True(t, doc.Validate([]any{"a"}, schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate([]any{"a", "b"}, schema.DefaultOptions()).AllValid())
}
