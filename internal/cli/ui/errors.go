// Package ui renders CLI output: decode failures, suggestions and success lines.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	wirecodec "github.com/reoring/wirecodec"
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Context      string
	Problem      string
	Location     string
	Hint         string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message.
//
// Example output:
//
//	❌ DECODE FAILED: required
//	   at /id
//	   failed to decode 'message' at '/': required field 'id' missing
//
//	   → Show the schema: wirecodec schema --type message
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	header := color.New(color.FgRed, color.Bold)
	body := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if opts.NoColor {
		for _, c := range []*color.Color{header, body, yellow, cyan} {
			c.DisableColor()
		}
	}

	if opts.Context != "" {
		header.Fprintf(&b, "❌ %s: %s\n", strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "❌ %s\n", opts.Problem)
	}
	if opts.Location != "" {
		body.Fprintf(&b, "   at %s\n", opts.Location)
	}
	if opts.Hint != "" {
		body.Fprintf(&b, "   %s\n", opts.Hint)
	}
	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}
	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}
	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// DecodeError formats err. Issues render with code, location and message;
// any other error renders as a plain failure.
func DecodeError(err error, typeName string, noColor bool) string {
	var unknown *UnknownTypeError
	if errors.As(err, &unknown) {
		return FormatError(ErrorOptions{
			Context:      "unknown type",
			Problem:      fmt.Sprintf("Cannot find schema '%s'.", unknown.Name),
			Suggestions:  unknown.Suggestions,
			HelpCommands: []string{"See all schemas: wirecodec list"},
			NoColor:      noColor,
		})
	}
	iss, ok := wirecodec.AsIssues(err)
	if !ok || len(iss) == 0 {
		return FormatError(ErrorOptions{Problem: err.Error(), NoColor: noColor})
	}
	it := iss[0]
	opts := ErrorOptions{
		Context:  "decode failed",
		Problem:  it.Code,
		Location: it.Path,
		Hint:     it.Message,
		NoColor:  noColor,
	}
	if it.Hint != "" {
		opts.Hint = it.Message + " (" + it.Hint + ")"
	}
	if typeName != "" {
		opts.HelpCommands = []string{"Show the schema: wirecodec schema --type " + typeName}
	}
	return FormatError(opts)
}

// UnknownTypeError is returned when --type names no registered schema.
type UnknownTypeError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownTypeError) Error() string { return fmt.Sprintf("unknown type %q", e.Name) }

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}
