// Package pointer implements the JSON Pointer location tracking used to
// label instance and schema locations during validation.
//
// Parsing of pointer *syntax* ("/a/b/0", escaping of ~0 and ~1) is delegated
// to github.com/go-openapi/jsonpointer; this package owns only the ordered
// segment representation and the append/resolve operations a validation
// pass needs.
package pointer

import (
	"strconv"
	"strings"

	jsonpointer "github.com/go-openapi/jsonpointer"
)

// Pointer is an ordered, immutable sequence of unescaped path segments.
type Pointer struct {
	segments []string
}

// Root is the empty pointer.
var Root = Pointer{}

// Parse parses pointer syntax ("", "/", "/a/b/0") into a Pointer, delegating
// escape handling to go-openapi/jsonpointer.
func Parse(raw string) (Pointer, error) {
	if raw == "" {
		return Root, nil
	}
	p, err := jsonpointer.New(raw)
	if err != nil {
		return Pointer{}, err
	}
	return Pointer{segments: append([]string(nil), p.DecodedTokens()...)}, nil
}

// Append returns a new Pointer with the given segments appended. The
// receiver is never mutated.
func (p Pointer) Append(seg ...string) Pointer {
	next := make([]string, 0, len(p.segments)+len(seg))
	next = append(next, p.segments...)
	next = append(next, seg...)
	return Pointer{segments: next}
}

// Segments returns the pointer's segments. The returned slice must not be
// mutated by callers.
func (p Pointer) Segments() []string {
	return p.segments
}

// Empty reports whether the pointer addresses the document root.
func (p Pointer) Empty() bool {
	return len(p.segments) == 0
}

// String renders the pointer using RFC 6901 escaping.
func (p Pointer) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		b.WriteString(escape(s))
	}
	return b.String()
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

// Resolve walks v by the pointer's segments. It returns ok=false the moment
// a segment can't be applied: a missing object key, an out-of-range or
// non-numeric array index, or a step into a scalar.
func (p Pointer) Resolve(v any) (any, bool) {
	cur := v
	for _, seg := range p.segments {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}
