// Package codec holds ready-made codecs for common domain types that are not
// plain wire scalars.
package codec

import (
	"time"

	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

// CodeInvalidFormat is reported when a string does not parse as the expected format.
const CodeInvalidFormat = "invalid_format"

// TimeRFC3339 returns a codec between RFC3339 strings and time.Time. Encoding
// normalizes to UTC and trims trailing zero fractions.
func TimeRFC3339() wirecodec.Codec[time.Time] { return rfc3339Codec{} }

type rfc3339Codec struct{}

func (rfc3339Codec) Encode(t time.Time) wirecodec.Value {
	return wirecodec.String(formatRFC3339Canonical(t))
}

func (rfc3339Codec) Decode(v wirecodec.Value, p wirecodec.Path) (time.Time, error) {
	s, ok := v.AsString()
	if !ok {
		return time.Time{}, wirecodec.TypeMismatch(p, "string", v.Kind())
	}
	t, err := parseRFC3339(s)
	if err != nil {
		iss := wirecodec.IssueAt(p, CodeInvalidFormat, wirecodec.DecodeContext("rfc3339", p),
			map[string]string{"expected": "RFC3339 time", "got": s}, map[string]any{"got": s})
		iss[0].Hint = "expected RFC3339 time, e.g. 2025-01-01T00:00:00Z"
		return time.Time{}, iss
	}
	return t, nil
}

func (rfc3339Codec) JSONSchema() *js.Schema { return &js.Schema{Type: "string", Format: "date-time"} }

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
