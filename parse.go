package wirecodec

import (
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/wirecodec/internal/engine"
)

// Parse reads one complete document from src into a Value. Anything other
// than whitespace after the top-level value is a parse_error.
func Parse(src Source, opts ...ParseOpt) (Value, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	ts := eng.WrapWithEnforcement(src, toEngineOptions(opt))
	tok, err := ts.NextToken()
	if err != nil {
		return Value{}, toIssues(err)
	}
	v, err := buildValue(ts, tok)
	if err != nil {
		return Value{}, toIssues(err)
	}
	if _, err := ts.NextToken(); err == nil {
		return Value{}, singleIssue(CodeParseError, "/", "unexpected data after top-level value")
	} else if !errors.Is(err, io.EOF) {
		return Value{}, toIssues(err)
	}
	return v, nil
}

// ParseJSON is Parse over a byte slice using the current JSON driver.
func ParseJSON(data []byte, opts ...ParseOpt) (Value, error) {
	return Parse(JSONBytes(data), opts...)
}

// DecodeFrom parses src and decodes the document with c from the root path.
func DecodeFrom[T any](c Codec[T], src Source, opts ...ParseOpt) (T, error) {
	v, err := Parse(src, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(v, Root())
}

// DecodeJSON decodes a JSON document with c.
func DecodeJSON[T any](c Codec[T], data []byte, opts ...ParseOpt) (T, error) {
	return DecodeFrom(c, JSONBytes(data), opts...)
}

// StreamDecode decodes a JSON document read from r. When MaxBytes is set the
// input is capped before decoding starts.
func StreamDecode[T any](c Codec[T], r io.Reader, opts ...ParseOpt) (T, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		max := opts[len(opts)-1].MaxBytes
		data, err := io.ReadAll(io.LimitReader(r, max+1))
		if err != nil {
			var zero T
			return zero, singleIssue(CodeParseError, "/", err.Error())
		}
		if int64(len(data)) > max {
			var zero T
			return zero, singleIssue(CodeTruncated, "/", "max bytes exceeded")
		}
		return DecodeJSON(c, data, opts...)
	}
	return DecodeFrom(c, JSONReader(r), opts...)
}

// EncodeJSON encodes v with c and renders the result as JSON.
func EncodeJSON[T any](c Codec[T], v T) ([]byte, error) {
	return c.Encode(v).MarshalJSON()
}

var errUnexpectedToken = errors.New("unexpected token")

func buildValue(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		b := NewObjectBuilder(4)
		for {
			kt, err := src.NextToken()
			if err != nil {
				return Value{}, err
			}
			if kt.Kind == eng.KindEndObject {
				return b.Build(), nil
			}
			if kt.Kind != eng.KindKey {
				return Value{}, fmt.Errorf("%w: %s where a key was expected", errUnexpectedToken, kt.Kind)
			}
			vt, err := src.NextToken()
			if err != nil {
				return Value{}, err
			}
			mv, err := buildValue(src, vt)
			if err != nil {
				return Value{}, err
			}
			b.Set(kt.String, mv)
		}
	case eng.KindBeginArray:
		var items []Value
		for {
			it, err := src.NextToken()
			if err != nil {
				return Value{}, err
			}
			if it.Kind == eng.KindEndArray {
				return Value{kind: KindArray, arr: items}, nil
			}
			v, err := buildValue(src, it)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		n, err := ParseNumber(tok.Number)
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("%w: %s", errUnexpectedToken, tok.Kind)
}

func toEngineOptions(opt ParseOpt) eng.EnforceOptions {
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if opt.OnWarning != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			opt.OnWarning(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	return eo
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return Issues{{Code: ie.Code, Path: ie.Path, Message: ie.Message}}
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return singleIssue(CodeParseError, "/", err.Error())
}

func singleIssue(code, path, msg string) Issues {
	return Issues{{Code: code, Path: path, Message: msg}}
}
