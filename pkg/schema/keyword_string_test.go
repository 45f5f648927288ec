package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dlovans/verita/pkg/schema"
)

func TestStringLengthCountsCodePoints(t *testing.T) {
	doc := mustParse(t, `{"minLength": 2, "maxLength": 3}`)
	// "héllo" would be 5 runes; use a short multi-byte example instead: "日本"
	// is 2 code points but 6 UTF-8 bytes.
	assert.True(t, doc.Validate("日本", schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("日", schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("日本語語", schema.DefaultOptions()).AllValid())
}

func TestStringLengthIgnoresNonStrings(t *testing.T) {
	doc := mustParse(t, `{"minLength": 100}`)
	assert.True(t, doc.Validate(float64(1), schema.DefaultOptions()).AllValid())
}

func TestPatternECMAScriptLookahead(t *testing.T) {
	// RE2 (Go's stdlib regexp) rejects lookahead outright; regexp2 accepts it.
	doc := mustParse(t, `{"pattern": "^(?=.*[0-9]).{3,}$"}`)
	assert.True(t, doc.Validate("ab1", schema.DefaultOptions()).AllValid())
	assert.False(t, doc.Validate("abc", schema.DefaultOptions()).AllValid())
}

func TestPatternRejectsNonStringSilently(t *testing.T) {
	doc := mustParse(t, `{"pattern": "^[0-9]+$"}`)
	assert.True(t, doc.Validate(float64(123), schema.DefaultOptions()).AllValid())
}
