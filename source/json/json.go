// Package json tokenizes JSON with encoding/json. It is the fallback driver
// used when no other driver has been installed.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	eng "github.com/reoring/wirecodec/internal/engine"
)

type frame struct {
	object       bool
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()
	out := eng.Token{Offset: s.lastOffset}

	switch v := tok.(type) {
	case json.Delim:
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
		if top := s.top(); top != nil && top.object && top.expectingKey {
			top.expectingKey = false
			out.Kind, out.String = eng.KindKey, v
			return out, nil
		}
		out.Kind, out.String = eng.KindString, v
	case bool:
		out.Kind, out.Bool = eng.KindBool, v
	case json.Number:
		out.Kind, out.Number = eng.KindNumber, string(v)
	case float64:
		out.Kind, out.Number = eng.KindNumber, strconv.FormatFloat(v, 'g', -1, 64)
	default:
		out.Kind = eng.KindNull
	}
	// a member value has been consumed; the enclosing object expects a key again
	if top := s.top(); top != nil && top.object {
		top.expectingKey = true
	}
	return out, nil
}

func (s *jsonSource) top() *frame {
	if n := len(s.stack); n > 0 {
		return &s.stack[n-1]
	}
	return nil
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
