// Package format implements the named validators the JSON Schema "format"
// keyword delegates to. Each validator declares which drafts it applies
// under and whether it is known at all, per the registry design spec.md
// §4.2 calls for.
package format

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/go-openapi/jsonpointer"
	"github.com/google/uuid"
)

// DraftSet mirrors schema.DraftSet without importing it, to keep this
// package dependency-free of the core evaluation engine.
type DraftSet uint8

const (
	Draft04 DraftSet = 1 << iota
	Draft06
	Draft07
	Draft2019

	AllDrafts = Draft04 | Draft06 | Draft07 | Draft2019
)

// Validator checks a string-typed instance against one named format.
type Validator func(s string) error

// Entry is one registered format.
type Entry struct {
	Name   string
	Drafts DraftSet
	Check  Validator
}

// Registry is a name -> Entry lookup for "format" assertions.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry returns a registry seeded with the built-in formats.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry, len(builtins))}
	for _, e := range builtins {
		r.entries[e.Name] = e
	}
	return r
}

// IsKnown reports whether name is a registered format.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Validate checks s against the named format. It returns an error that
// describes the failure, or nil for pass; it returns (nil) with ok=false
// when the format is unknown.
func (r *Registry) Validate(name, s string, draft DraftSet) (err error, ok bool) {
	e, found := r.entries[name]
	if !found {
		return nil, false
	}
	if e.Drafts&draft == 0 {
		return nil, true
	}
	return e.Check(s), true
}

var builtins = []Entry{
	{Name: "date-time", Drafts: AllDrafts, Check: checkDateTime},
	{Name: "date", Drafts: Draft07 | Draft2019, Check: checkDate},
	{Name: "time", Drafts: Draft07 | Draft2019, Check: checkTime},
	{Name: "duration", Drafts: Draft2019, Check: checkDuration},
	{Name: "email", Drafts: AllDrafts, Check: checkEmail},
	{Name: "idn-email", Drafts: Draft07 | Draft2019, Check: checkEmail},
	{Name: "hostname", Drafts: AllDrafts, Check: checkHostname},
	{Name: "idn-hostname", Drafts: Draft07 | Draft2019, Check: checkHostname},
	{Name: "ipv4", Drafts: AllDrafts, Check: checkIPv4},
	{Name: "ipv6", Drafts: AllDrafts, Check: checkIPv6},
	{Name: "uri", Drafts: AllDrafts, Check: checkURI},
	{Name: "uri-reference", Drafts: Draft06 | Draft07 | Draft2019, Check: checkURIReference},
	{Name: "iri", Drafts: Draft07 | Draft2019, Check: checkURI},
	{Name: "iri-reference", Drafts: Draft07 | Draft2019, Check: checkURIReference},
	{Name: "uri-template", Drafts: Draft06 | Draft07 | Draft2019, Check: checkURITemplate},
	{Name: "json-pointer", Drafts: Draft06 | Draft07 | Draft2019, Check: checkJSONPointer},
	{Name: "relative-json-pointer", Drafts: Draft07 | Draft2019, Check: checkRelativeJSONPointer},
	{Name: "regex", Drafts: AllDrafts, Check: checkRegex},
	{Name: "uuid", Drafts: Draft2019, Check: checkUUID},
}

func checkDateTime(s string) error {
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return fmt.Errorf("not a valid date-time: %w", err)
	}
	return nil
}

func checkDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("not a valid date: %w", err)
	}
	return nil
}

func checkTime(s string) error {
	for _, layout := range []string{"15:04:05Z07:00", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return nil
		}
	}
	return fmt.Errorf("not a valid time: %q", s)
}

func checkDuration(s string) error {
	if s == "" || s[0] != 'P' {
		return fmt.Errorf("not a valid duration: %q", s)
	}
	// Accept the ISO 8601 duration grammar loosely: P, optional date part,
	// optional T + time part, each component a number followed by a unit.
	rest := s[1:]
	units := "YMWDHMS"
	seenT := false
	saw := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		if c == 'T' {
			seenT = true
			continue
		}
		if c >= '0' && c <= '9' {
			saw = true
			continue
		}
		if strings.IndexByte(units, c) < 0 {
			return fmt.Errorf("not a valid duration: %q", s)
		}
	}
	_ = seenT
	if !saw {
		return fmt.Errorf("not a valid duration: %q", s)
	}
	return nil
}

func checkEmail(s string) error {
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("not a valid email: %w", err)
	}
	return nil
}

func checkHostname(s string) error {
	if s == "" || len(s) > 253 {
		return fmt.Errorf("not a valid hostname: %q", s)
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 {
			return fmt.Errorf("not a valid hostname label: %q", label)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("hostname label cannot start or end with '-': %q", label)
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return fmt.Errorf("invalid hostname character %q", r)
			}
		}
	}
	return nil
}

func checkIPv4(s string) error {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil || strings.Contains(s, ":") {
		return fmt.Errorf("not a valid IPv4 address: %q", s)
	}
	return nil
}

func checkIPv6(s string) error {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() != nil {
		return fmt.Errorf("not a valid IPv6 address: %q", s)
	}
	return nil
}

func checkURI(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("not a valid URI: %w", err)
	}
	if !u.IsAbs() {
		return fmt.Errorf("not an absolute URI: %q", s)
	}
	return nil
}

func checkURIReference(s string) error {
	if _, err := url.Parse(s); err != nil {
		return fmt.Errorf("not a valid URI reference: %w", err)
	}
	return nil
}

func checkURITemplate(s string) error {
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced uri-template: %q", s)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced uri-template: %q", s)
	}
	return nil
}

func checkJSONPointer(s string) error {
	if s == "" {
		return nil
	}
	if _, err := jsonpointer.New(s); err != nil {
		return fmt.Errorf("not a valid json-pointer: %w", err)
	}
	return nil
}

func checkRelativeJSONPointer(s string) error {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return fmt.Errorf("not a valid relative-json-pointer: %q", s)
	}
	rest := s[i:]
	if rest == "" || rest == "#" {
		return nil
	}
	return checkJSONPointer(rest)
}

func checkRegex(s string) error {
	if _, err := regexp2.Compile(s, regexp2.ECMAScript); err != nil {
		return fmt.Errorf("not a valid regex: %w", err)
	}
	return nil
}

func checkUUID(s string) error {
	if _, err := uuid.Parse(s); err != nil {
		return fmt.Errorf("not a valid uuid: %w", err)
	}
	return nil
}
