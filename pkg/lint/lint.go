// Package lint provides static analysis for JSON Schema documents.
// It detects potential issues without validating any instance against them.
package lint

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dlovans/verita/internal/pointer"
	"github.com/dlovans/verita/pkg/schema"
)

// Issue represents a problem found during static analysis.
type Issue struct {
	Severity string `json:"severity"` // "error", "warning", "info"
	Path     string `json:"path,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Message  string `json:"message"`
}

// Result contains all issues found by the linter.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Run performs static analysis on raw schema JSON without validating any
// instance against it: unresolvable local $refs, duplicate $id
// declarations, and format names the registry doesn't recognize. Duplicate
// $anchor names are not reported.
func Run(jsonText string) (*Result, error) {
	var v any
	if err := json.Unmarshal([]byte(jsonText), &v); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	doc, err := schema.ParseBytes([]byte(jsonText), schema.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("schema parse error: %w", err)
	}

	result := &Result{Valid: true, Issues: make([]Issue, 0)}

	seenIDs := make(map[string][]string)
	seenRefs := make(map[string]struct{})
	walk(v, "#", func(path string, node map[string]any) {
		if id, ok := node["$id"].(string); ok && id != "" {
			seenIDs[id] = append(seenIDs[id], path)
		}
		if ref, ok := node["$ref"].(string); ok {
			if _, dup := seenRefs[path]; !dup {
				seenRefs[path] = struct{}{}
				checkLocalRef(doc, path, ref, result)
			}
		}
		if f, ok := node["format"].(string); ok {
			checkFormat(path, f, result)
		}
	})

	for id, paths := range seenIDs {
		if len(paths) > 1 {
			sort.Strings(paths)
			result.addWarning(paths[0], "$id", fmt.Sprintf(
				"$id %q is declared more than once: %v", id, paths))
		}
	}

	return result, nil
}

// walk visits every object node in a decoded JSON value, calling fn with
// its JSON Pointer path (spec.md-flavored: "#/properties/foo").
func walk(v any, path string, fn func(path string, node map[string]any)) {
	switch t := v.(type) {
	case map[string]any:
		fn(path, t)
		for _, k := range sortedObjectKeys(t) {
			walk(t[k], path+"/"+k, fn)
		}
	case []any:
		for i, e := range t {
			walk(e, fmt.Sprintf("%s/%d", path, i), fn)
		}
	}
}

func sortedObjectKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkLocalRef reports a $ref whose fragment is a JSON Pointer into the
// same document but does not resolve against it. Refs to other documents
// (by URI, or to a named anchor) aren't checked here since that requires
// network access the linter deliberately avoids.
func checkLocalRef(doc *schema.Document, path, ref string, result *Result) {
	if len(ref) == 0 || ref[0] != '#' {
		return
	}
	frag := ref[1:]
	if frag != "" && frag[0] != '/' {
		return // named anchor; not statically checkable without the registry
	}
	p, err := pointer.Parse(frag)
	if err != nil {
		result.addError(path, "$ref", fmt.Sprintf("malformed $ref fragment %q: %v", ref, err))
		return
	}
	if _, ok := doc.ResolveSubschema(p); !ok {
		result.addError(path, "$ref", fmt.Sprintf("$ref %q does not resolve within this document", ref))
	}
}

func checkFormat(path, name string, result *Result) {
	if !knownFormats[name] {
		result.addWarning(path, "format", fmt.Sprintf("format %q is not a recognized built-in format", name))
	}
}

var knownFormats = map[string]bool{
	"date-time": true, "date": true, "time": true, "duration": true,
	"email": true, "idn-email": true, "hostname": true, "idn-hostname": true,
	"ipv4": true, "ipv6": true, "uri": true, "uri-reference": true,
	"iri": true, "iri-reference": true, "uri-template": true,
	"json-pointer": true, "relative-json-pointer": true, "regex": true, "uuid": true,
}

func (r *Result) addError(path, keyword, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{Severity: "error", Path: path, Keyword: keyword, Message: message})
}

func (r *Result) addWarning(path, keyword, message string) {
	r.Issues = append(r.Issues, Issue{Severity: "warning", Path: path, Keyword: keyword, Message: message})
}
