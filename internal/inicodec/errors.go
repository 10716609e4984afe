package inicodec

import (
	"fmt"
	"strings"
)

// FileError reports a settings file that could not be read or written.
type FileError struct {
	Op   string // "read", "write", "scan"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed section-based text.
type ParseError struct {
	Path string // empty when parsing in-memory data
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StructureError is returned when a tree cannot be represented as sections
// of key=value lines.
type StructureError struct {
	Path   []string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("unsupported structure at %q: %s", strings.Join(e.Path, "/"), e.Reason)
}
