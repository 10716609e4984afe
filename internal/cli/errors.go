package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/migrate-gse/internal/inicodec"
	"github.com/roach88/migrate-gse/internal/legacy"
	"github.com/roach88/migrate-gse/internal/revert"
	"github.com/roach88/migrate-gse/internal/settingsdir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Nothing to migrate, or an unexpected failure
	ExitCommandError = 2 // Command error (folder not detected, unreadable or malformed input, write failure)
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNothing     = "E003" // No recognised settings
	ErrCodeFormat      = "E004" // Malformed input file
	ErrCodeNotFound    = "E005" // Settings folder not found
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeReadFailed  = "E008" // File read error
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errNothingFound is reported when a run recognised no settings at all.
var errNothingFound = errors.New("nothing found")

// classify maps a package error to its response code and exit code.
func classify(err error) (code string, exit int) {
	var (
		detectErr *settingsdir.DetectError
		formatErr *legacy.FormatError
		parseErr  *inicodec.ParseError
		legacyErr *legacy.FileError
		codecErr  *inicodec.FileError
		writeErr  *revert.WriteError
		shapeErr  *inicodec.StructureError
	)
	switch {
	case errors.Is(err, errNothingFound):
		return ErrCodeNothing, ExitFailure
	case errors.As(err, &detectErr):
		return ErrCodeNotFound, ExitCommandError
	case errors.As(err, &formatErr), errors.As(err, &parseErr), errors.As(err, &shapeErr):
		return ErrCodeFormat, ExitCommandError
	case errors.As(err, &writeErr):
		return ErrCodeWriteFailed, ExitCommandError
	case errors.As(err, &legacyErr):
		if legacyErr.Op == "scan" {
			return ErrCodeScanError, ExitCommandError
		}
		return ErrCodeReadFailed, ExitCommandError
	case errors.As(err, &codecErr):
		switch codecErr.Op {
		case "scan":
			return ErrCodeScanError, ExitCommandError
		case "write":
			return ErrCodeWriteFailed, ExitCommandError
		}
		return ErrCodeReadFailed, ExitCommandError
	}
	return ErrCodeGeneric, ExitFailure
}

// fail reports err through the formatter and returns the matching ExitError.
func fail(f *OutputFormatter, err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exit, code, err)
}
