package schema_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlovans/verita/pkg/schema"
)

func TestRegistryGetFailsWithoutDownloader(t *testing.T) {
	reg := schema.New()
	opts := schema.NewOptions(schema.WithRegistry(reg))
	_, err := reg.Get("https://example.com/missing.json", opts)
	assert.Error(t, err)
}

func TestRegistryGetDownloadsParsesAndCaches(t *testing.T) {
	reg := schema.New()
	calls := 0
	download := func(uri string) (string, error) {
		calls++
		return `{"type": "integer", "minimum": 0}`, nil
	}
	opts := schema.NewOptions(schema.WithRegistry(reg), schema.WithDownloader(download))

	doc, err := reg.Get("https://example.com/count.json", opts)
	require.NoError(t, err)
	assert.True(t, doc.Validate(float64(3), schema.DefaultOptions()).AllValid())

	// A second Get for the same URI must hit the cache, not the downloader again.
	_, err = reg.Get("https://example.com/count.json", opts)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRegistryGetPropagatesDownloadError(t *testing.T) {
	reg := schema.New()
	download := func(uri string) (string, error) {
		return "", fmt.Errorf("network unreachable")
	}
	opts := schema.NewOptions(schema.WithRegistry(reg), schema.WithDownloader(download))
	_, err := reg.Get("https://example.com/unreachable.json", opts)
	assert.Error(t, err)
}

func TestRefResolvesThroughConfiguredRegistryAndDownloader(t *testing.T) {
	reg := schema.New()
	download := func(uri string) (string, error) {
		return `{"type": "string", "minLength": 1}`, nil
	}
	opts := schema.NewOptions(schema.WithRegistry(reg), schema.WithDownloader(download))

	raw := `{"properties": {"name": {"$ref": "https://example.com/name.json"}}}`
	doc, err := schema.ParseBytes([]byte(raw), opts)
	require.NoError(t, err)

	assert.True(t, doc.Validate(map[string]any{"name": "Ada"}, opts).AllValid())
	assert.False(t, doc.Validate(map[string]any{"name": ""}, opts).AllValid())
	assert.False(t, doc.Validate(map[string]any{"name": float64(1)}, opts).AllValid())
}
