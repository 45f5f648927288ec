package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestMultipleOfExactDivision(t *testing.T) {
	doc := mustParse(t, `{"multipleOf": 2}`)
	assert.True(t, doc.Validate(float64(4), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(0), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(5), schema.DefaultOptions()).AllValid())
}

func TestMinimumMaximum(t *testing.T) {
	doc := mustParse(t, `{"minimum": 0, "maximum": 10}`)
	assert.True(t, doc.Validate(float64(0), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(10), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(-1), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(11), schema.DefaultOptions()).AllValid())
}

func TestExclusiveBoundsDraft2019Numeric(t *testing.T) {
	doc := mustParse(t, `{"exclusiveMinimum": 0, "exclusiveMaximum": 10}`)
	assert.False(t, doc.Validate(float64(0), schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate(float64(10), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(5), schema.DefaultOptions()).AllValid())
}

func TestExclusiveBoundsDraft04BooleanSibling(t *testing.T) {
	raw := `{"minimum": 0, "exclusiveMinimum": true, "maximum": 10, "exclusiveMaximum": false}`
	doc, err := schema.ParseBytes([]byte(raw), schema.NewOptions(schema.WithDraft(schema.Draft04)))
	require.NoError(t, err)

	assert.False(t, doc.Validate(float64(0), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(10), schema.DefaultOptions()).AllValid())
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
}

func TestNumericKeywordsIgnoreNonNumbers(t *testing.T) {
	doc := mustParse(t, `{"minimum": 5, "multipleOf": 2}`)
	assert.True(t, doc.Validate("not a number", schema.DefaultOptions()).AllValid())
}
