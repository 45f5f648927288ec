package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/lint"
)

func findIssue(issues []lint.Issue, keyword string) (lint.Issue, bool) {
	for _, i := range issues {
		if i.Keyword == keyword {
			return i, true
		}
	}
	return lint.Issue{}, false
}

func TestRunCleanSchemaHasNoIssues(t *testing.T) {
	res, err := lint.Run(`{
		"type": "object",
		"properties": {"name": {"type": "string"}}
	}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Issues)
}

func TestRunMalformedJSONReturnsError(t *testing.T) {
	_, err := lint.Run(`{not json`)
	assert.Error(t, err)
}

func TestRunDanglingLocalRefIsAnError(t *testing.T) {
	res, err := lint.Run(`{
		"properties": {"name": {"$ref": "#/$defs/missing"}}
	}`)
	require.NoError(t, err)
	assert.False(t, res.Valid)

	issue, ok := findIssue(res.Issues, "$ref")
	require.True(t, ok)
	assert.Equal(t, "error", issue.Severity)
	assert.Contains(t, issue.Message, "does not resolve")
}

func TestRunLocalRefThatResolvesIsNotReported(t *testing.T) {
	res, err := lint.Run(`{
		"$defs": {"name": {"type": "string"}},
		"properties": {"name": {"$ref": "#/$defs/name"}}
	}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	_, ok := findIssue(res.Issues, "$ref")
	assert.False(t, ok)
}

func TestRunRefToNamedAnchorIsNotStaticallyChecked(t *testing.T) {
	res, err := lint.Run(`{
		"$defs": {"name": {"$anchor": "nameAnchor", "type": "string"}},
		"properties": {"name": {"$ref": "#nameAnchor"}}
	}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	_, ok := findIssue(res.Issues, "$ref")
	assert.False(t, ok)
}

func TestRunDuplicateIDIsAWarning(t *testing.T) {
	res, err := lint.Run(`{
		"$defs": {
			"a": {"$id": "https://example.com/dup.json", "type": "string"},
			"b": {"$id": "https://example.com/dup.json", "type": "number"}
		}
	}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	issue, ok := findIssue(res.Issues, "$id")
	require.True(t, ok)
	assert.Equal(t, "warning", issue.Severity)
	assert.Contains(t, issue.Message, "dup.json")
}

func TestRunUnknownFormatIsAWarning(t *testing.T) {
	res, err := lint.Run(`{"format": "not-a-real-format"}`)
	require.NoError(t, err)
	assert.True(t, res.Valid)

	issue, ok := findIssue(res.Issues, "format")
	require.True(t, ok)
	assert.Equal(t, "warning", issue.Severity)
}

func TestRunKnownFormatIsNotReported(t *testing.T) {
	res, err := lint.Run(`{"format": "uuid"}`)
	require.NoError(t, err)
	_, ok := findIssue(res.Issues, "format")
	assert.False(t, ok)
}
