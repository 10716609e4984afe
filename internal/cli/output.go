package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
	Color     bool   // ANSI marks in text output
	RunID     string // stamped on JSON/YAML responses
}

// CLIResponse is the standard structured response for CLI output.
type CLIResponse struct {
	Status string      `json:"status" yaml:"status"`                     // "ok" or "error"
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`     // success payload
	Error  *CLIError   `json:"error,omitempty" yaml:"error,omitempty"`   // error details
	RunID  string      `json:"run_id,omitempty" yaml:"run_id,omitempty"` // correlates one invocation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code" yaml:"code"`                           // "E001", "E002", etc.
	Message string      `json:"message" yaml:"message"`                     // human-readable message
	Details interface{} `json:"details,omitempty" yaml:"details,omitempty"` // additional context
}

// Structured reports whether the format is machine-readable.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "yaml"
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	resp.RunID = f.RunID
	if f.Format == "yaml" {
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Structured() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Structured() {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.GetErrWriter(), "%s [%s]: %s\n", f.mark(false), code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.GetErrWriter(), "Details: %v\n", details)
	}
	return nil
}

// Done prints a success line prefixed with a check mark. Text format only.
func (f *OutputFormatter) Done(format string, args ...interface{}) {
	if f.Structured() {
		return
	}
	fmt.Fprintf(f.Writer, "%s %s\n", f.mark(true), fmt.Sprintf(format, args...))
}

// Println writes a line to Writer in text format only.
func (f *OutputFormatter) Println(a ...interface{}) {
	if f.Structured() {
		return
	}
	fmt.Fprintln(f.Writer, a...)
}

func (f *OutputFormatter) mark(ok bool) string {
	c := color.New(color.FgRed)
	text := "✗ Error"
	if ok {
		c = color.New(color.FgGreen)
		text = "✓"
	}
	if f.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
