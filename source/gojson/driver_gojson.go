// Package gojson provides a JSON driver backed by github.com/goccy/go-json.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	wirecodec "github.com/reoring/wirecodec"
	eng "github.com/reoring/wirecodec/internal/engine"
)

// Driver returns a wirecodec.JSONDriver backed by goccy/go-json.
func Driver() wirecodec.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) wirecodec.Source { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) wirecodec.Source     { return NewBytes(b) }
func (driverGoJSON) Name() string                           { return "go-json" }

// countingReader tracks how many bytes the decoder has pulled. The decoder
// reads ahead, so the count is an upper bound of the consumed input.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type frame struct {
	object       bool
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	cr    *countingReader
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	cr := &countingReader{r: r}
	dec := j.NewDecoder(cr)
	dec.UseNumber()
	return &source{dec: dec, cr: cr}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	out := eng.Token{Offset: s.cr.n}

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			out.Kind = eng.KindBeginObject
			return out, nil
		case '[':
			s.stack = append(s.stack, frame{})
			out.Kind = eng.KindBeginArray
			return out, nil
		case '}':
			out.Kind = eng.KindEndObject
		case ']':
			out.Kind = eng.KindEndArray
		}
		if n := len(s.stack); n > 0 {
			s.stack = s.stack[:n-1]
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case j.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
	return out, nil
}

func (s *source) Location() int64 { return s.cr.n }
