package schema

import (
	"embed"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

//go:embed metaschemas/*.json
var metaschemaFS embed.FS

// metaschemaFiles maps each seeded URI to the embedded file that defines it
// (spec.md §4.4 "Seeded at startup with the four meta-schemas ... plus the
// JSON Patch schema").
var metaschemaFiles = map[string]string{
	"http://json-schema.org/draft-04/schema#":       "metaschemas/draft04.json",
	"http://json-schema.org/draft-06/schema#":       "metaschemas/draft06.json",
	"http://json-schema.org/draft-07/schema#":       "metaschemas/draft07.json",
	"https://json-schema.org/draft/2019-09/schema":  "metaschemas/2019-09.json",
	"http://json-schema.org/draft-07/json-patch#":   "metaschemas/json-patch.json",
}

func seedMetaschemas(r *Registry) {
	for uri, file := range metaschemaFiles {
		raw, err := metaschemaFS.ReadFile(file)
		if err != nil {
			// Embedded at build time; a miss here is a packaging bug, not a
			// runtime condition callers can act on.
			panic("verita: missing embedded metaschema " + file + ": " + err.Error())
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			panic("verita: invalid embedded metaschema " + file + ": " + err.Error())
		}
		// Can't call DefaultOptions here: its Registry defaults to Global,
		// and Global's own initializer reaches this function, which would
		// be an initialization cycle. Seeding always targets r itself.
		doc, err := Parse(v, &Options{
			DefaultDraft:            DefaultDraft,
			ValidateFormat:          true,
			AllowUnknownFormats:     false,
			OutputFormat:            OutputDetailed,
			ShouldReportChildErrors: func(string, *Context) bool { return true },
			Registry:                r,
			Logger:                  logrus.StandardLogger(),
		})
		if err != nil {
			panic("verita: could not parse embedded metaschema " + file + ": " + err.Error())
		}
		doc.DocumentPath = uri
		r.docs[trimURI(uri)] = doc
		local := newLocal()
		doc.RegisterSubschemas(uri, local)
		for u, d := range local.docs {
			r.docs[trimURI(u)] = d
		}
	}
}

// r2metaschema looks the metaschema document up by URI in Global (where
// seedMetaschemas always lands); no other registry is consulted.
func r2metaschema(uri string) (*Document, bool) {
	if d, ok := Global.lookup(uri); ok {
		return d, true
	}
	return nil, false
}
