package schema_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/dlovans/verita/pkg/schema"
)

// conformanceCase is one entry of a fixture's cases.json.
type conformanceCase struct {
	Name     string `json:"name"`
	Instance any    `json:"instance"`
	Valid    bool   `json:"valid"`
}

// TestConformanceFixtures runs every testdata/conformance/*.txtar archive: each
// bundles one schema.json and one cases.json, packed together the way
// golang.org/x/tools' own test corpora use txtar to keep a schema and its
// expected outcomes in a single reviewable file instead of scattered sidecars.
func TestConformanceFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/conformance/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, files, "expected at least one conformance fixture")

	for _, file := range files {
		file := file
		t.Run(filepath.Base(file), func(t *testing.T) {
			archive, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var schemaRaw, casesRaw []byte
			for _, f := range archive.Files {
				switch f.Name {
				case "schema.json":
					schemaRaw = f.Data
				case "cases.json":
					casesRaw = f.Data
				}
			}
			require.NotNil(t, schemaRaw, "fixture missing schema.json")
			require.NotNil(t, casesRaw, "fixture missing cases.json")

			doc, err := schema.ParseBytes(schemaRaw, schema.DefaultOptions())
			require.NoError(t, err)

			var cases []conformanceCase
			require.NoError(t, json.Unmarshal(casesRaw, &cases))
			require.NotEmpty(t, cases)

			for _, c := range cases {
				c := c
				t.Run(c.Name, func(t *testing.T) {
					res := doc.Validate(c.Instance, schema.DefaultOptions())
					assert.Equal(t, c.Valid, res.AllValid())
				})
			}
		})
	}
}
