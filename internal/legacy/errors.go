package legacy

import "fmt"

// FileError reports a legacy file, or the settings directory itself, that
// could not be read.
type FileError struct {
	Name string // file or directory path
	Op   string // "scan", "open", "read"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FormatError reports a line of a multi-line legacy file that lacks its
// separator.
type FormatError struct {
	File   string
	Line   int // 1-based
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %q", e.File, e.Line, e.Reason, e.Text)
}

// RuleError reports a rule whose Kind has no reader.
type RuleError struct {
	File string
	Kind Kind
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: no reader for rule kind %d (%s)", e.File, int(e.Kind), e.Kind)
}
