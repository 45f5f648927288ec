package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestFormatFlagCarriesOnlyValidity(t *testing.T) {
	doc := mustParse(t, `{"type": "string", "minLength": 3}`)
	res := doc.Validate("ab", schema.DefaultOptions())
	require.False(t, res.AllValid())

	report := schema.Format(res, schema.OutputFlag)
	assert.False(t, report.Valid)
	assert.Empty(t, report.Keyword)
	assert.Empty(t, report.Errors)
}

func TestFormatBasicListsEveryFailingLeaf(t *testing.T) {
	doc := mustParse(t, `{"type": "string", "minLength": 3, "pattern": "^[a-z]+$"}`)
	res := doc.Validate("AB", schema.DefaultOptions())
	require.False(t, res.AllValid())

	report := schema.Format(res, schema.OutputBasic)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 2)
	for _, e := range report.Errors {
		assert.False(t, e.Valid)
		assert.NotEmpty(t, e.Keyword)
		assert.NotEmpty(t, e.Error)
	}
}

func TestFormatBasicOnValidResultHasNoErrors(t *testing.T) {
	doc := mustParse(t, `{"type": "string"}`)
	res := doc.Validate("ok", schema.DefaultOptions())

	report := schema.Format(res, schema.OutputBasic)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestFormatDetailedMirrorsTheResultTree(t *testing.T) {
	doc := mustParse(t, `{"allOf": [{"type": "string"}, {"minLength": 3}]}`)
	res := doc.Validate("ab", schema.DefaultOptions())
	require.False(t, res.AllValid())

	report := schema.Format(res, schema.OutputDetailed)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Errors)

	var foundAllOf bool
	for _, e := range report.Errors {
		if e.Keyword == "allOf" {
			foundAllOf = true
			assert.False(t, e.Valid)
			assert.NotEmpty(t, e.Errors)
		}
	}
	assert.True(t, foundAllOf)
}
