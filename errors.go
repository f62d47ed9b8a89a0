package wirecodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/wirecodec/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNotAnObject         = "not_an_object"
	CodeInvalidType         = "invalid_type"
	CodeOverflow            = "overflow"
	CodeRequired            = "required"
	CodeUnrecognizedVariant = "unrecognized_variant"
	// Document-level codes produced while reading wire input.
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Issue represents a single decode failure.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string // Already carries the schema name and base path.
	Hint    string // Optional: remediation hints, expected kinds, etc.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
}

func (it Issue) String() string {
	if it.Message == "" {
		return fmt.Sprintf("%s at %s", it.Code, it.Path)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, it.Path, it.Message)
}

// Issues is a collection of decode errors that implements error. Codecs stop
// at the first failure, so a decode error holds exactly one Issue.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// IssueAt builds a single-issue error at p. The message is looked up through
// i18n and prefixed with context when context is non-empty.
func IssueAt(p Path, code, context string, data map[string]string, params map[string]any) Issues {
	msg := i18n.T(code, data)
	if context != "" {
		msg = context + ": " + msg
	}
	return Issues{{Path: p.String(), Code: code, Message: msg, Params: params}}
}

// TypeMismatch reports that the Value at p has the wrong kind.
func TypeMismatch(p Path, want string, got Kind) Issues {
	iss := IssueAt(p, CodeInvalidType, DecodeContext(want, p), map[string]string{"expected": want, "got": got.String()}, map[string]any{"expected": want, "got": got.String()})
	iss[0].Hint = "expected " + want
	return iss
}

// DecodeContext formats the base message used by struct and union codecs.
func DecodeContext(name string, p Path) string {
	return fmt.Sprintf("failed to decode '%s' at '%s'", name, p.String())
}
