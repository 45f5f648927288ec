package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// SchemaParseError is raised when a schema document is malformed JSON or a
// keyword's FromJSON rejects its value (spec.md §7).
type SchemaParseError struct {
	Keyword string
	Path    string
	cause   error
}

func (e *SchemaParseError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("schema parse error at %s (keyword %q): %v", e.Path, e.Keyword, e.cause)
	}
	return fmt.Sprintf("schema parse error at %s: %v", e.Path, e.cause)
}

func (e *SchemaParseError) Unwrap() error { return e.cause }

func newParseError(keyword, path string, cause error) error {
	return &SchemaParseError{Keyword: keyword, Path: path, cause: errors.WithStack(cause)}
}

// UnknownFormatError describes a format Verita doesn't recognize (spec.md §7).
// Nothing in this package returns it: when ValidateFormat && !AllowUnknownFormats,
// FormatKeyword reports an unknown format as a failing Result instead.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q", e.Format)
}

// SchemaLoadError wraps the structural errors produced when a downloaded
// document fails to validate against its own declared meta-schema
// (spec.md §7).
type SchemaLoadError struct {
	URI    string
	Errors []*Result
	cause  error
}

func (e *SchemaLoadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("schema at %q failed to load: %v", e.URI, e.cause)
	}
	return fmt.Sprintf("schema at %q does not validate against its meta-schema (%d errors)", e.URI, len(e.Errors))
}

func (e *SchemaLoadError) Unwrap() error { return e.cause }

// ReferenceResolutionError describes a $ref/$recursiveRef that could not be
// resolved. Per spec.md §7 this never propagates as a Go error out of
// Validate — the $ref keyword wraps it into a failing Result, whose
// AdditionalInfo["cause"] holds the error's message as a string.
type ReferenceResolutionError struct {
	URI   string
	cause error
}

func (e *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("could not resolve reference %q: %v", e.URI, e.cause)
}

func (e *ReferenceResolutionError) Unwrap() error { return e.cause }

func newRefError(uri string, cause error) *ReferenceResolutionError {
	return &ReferenceResolutionError{URI: uri, cause: errors.WithStack(cause)}
}
