// Package msgpack converts wirecodec Values to and from MessagePack. Map key
// order is preserved in both directions, so a record encoded through a codec
// keeps its declared field order on the wire.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	wirecodec "github.com/reoring/wirecodec"
)

// ContentType is the MIME type for MessagePack.
const ContentType = "application/msgpack"

// Marshal encodes v as MessagePack.
func Marshal(v wirecodec.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes v as one MessagePack object to w.
func Write(w io.Writer, v wirecodec.Value) error {
	return encodeValue(msgpack.NewEncoder(w), v)
}

// Encode runs c and marshals the result.
func Encode[T any](c wirecodec.Codec[T], v T) ([]byte, error) {
	return Marshal(c.Encode(v))
}

// Unmarshal decodes one MessagePack object. ParseOpt applies MaxDepth,
// MaxBytes and the duplicate key policy the same way it does for JSON.
func Unmarshal(data []byte, opts ...wirecodec.ParseOpt) (wirecodec.Value, error) {
	var opt wirecodec.ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return wirecodec.Value{}, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeTruncated, Message: "max bytes exceeded"}}
	}
	r := bytes.NewReader(data)
	d := decoder{dec: msgpack.NewDecoder(r), opt: opt}
	v, err := d.value(wirecodec.Root(), 0)
	if err != nil {
		return wirecodec.Value{}, err
	}
	if r.Len() > 0 {
		return wirecodec.Value{}, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeParseError, Message: fmt.Sprintf("%d trailing bytes after document", r.Len())}}
	}
	return v, nil
}

// Decode unmarshals data and decodes it with c.
func Decode[T any](c wirecodec.Codec[T], data []byte, opts ...wirecodec.ParseOpt) (T, error) {
	v, err := Unmarshal(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(v, wirecodec.Root())
}

func encodeValue(enc *msgpack.Encoder, v wirecodec.Value) error {
	switch v.Kind() {
	case wirecodec.KindNull:
		return enc.EncodeNil()
	case wirecodec.KindBool:
		b, _ := v.AsBool()
		return enc.EncodeBool(b)
	case wirecodec.KindNumber:
		n, _ := v.AsNumber()
		if i, ok := n.Int64(); ok && n.IsInt() {
			return enc.EncodeInt(i)
		}
		if u, ok := n.Uint64(); ok && n.IsInt() {
			return enc.EncodeUint(u)
		}
		return enc.EncodeFloat64(n.Float64())
	case wirecodec.KindString:
		s, _ := v.AsString()
		return enc.EncodeString(s)
	case wirecodec.KindArray:
		items, _ := v.AsArray()
		if err := enc.EncodeArrayLen(len(items)); err != nil {
			return err
		}
		for _, it := range items {
			if err := encodeValue(enc, it); err != nil {
				return err
			}
		}
		return nil
	case wirecodec.KindObject:
		if err := enc.EncodeMapLen(v.Len()); err != nil {
			return err
		}
		var err error
		v.Range(func(key string, val wirecodec.Value) bool {
			if err = enc.EncodeString(key); err != nil {
				return false
			}
			err = encodeValue(enc, val)
			return err == nil
		})
		return err
	}
	return fmt.Errorf("msgpack: unsupported value kind %s", v.Kind())
}

type decoder struct {
	dec *msgpack.Decoder
	opt wirecodec.ParseOpt
}

func (d decoder) fail(p wirecodec.Path, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return wirecodec.Issues{{Path: p.String(), Code: wirecodec.CodeParseError, Message: err.Error()}}
}

func (d decoder) value(p wirecodec.Path, depth int) (wirecodec.Value, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return wirecodec.Value{}, d.fail(p, err)
	}
	switch {
	case c == msgpcode.Nil:
		if err := d.dec.DecodeNil(); err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		return wirecodec.Null(), nil
	case c == msgpcode.False || c == msgpcode.True:
		b, err := d.dec.DecodeBool()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		return wirecodec.Bool(b), nil
	case c == msgpcode.Float || c == msgpcode.Double:
		f, err := d.dec.DecodeFloat64()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return wirecodec.Value{}, d.fail(p, fmt.Errorf("non-finite number %v", f))
		}
		return wirecodec.Float(f), nil
	case c == msgpcode.Uint64:
		u, err := d.dec.DecodeUint64()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		return wirecodec.Uint(u), nil
	case msgpcode.IsFixedNum(c) || isSizedInt(c):
		i, err := d.dec.DecodeInt64()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		return wirecodec.Int(i), nil
	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		return wirecodec.String(s), nil
	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		return d.array(p, depth+1)
	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		return d.object(p, depth+1)
	}
	return wirecodec.Value{}, d.fail(p, fmt.Errorf("unsupported msgpack code 0x%02x", c))
}

func isSizedInt(c byte) bool {
	switch c {
	case msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32,
		msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64:
		return true
	}
	return false
}

func (d decoder) checkDepth(p wirecodec.Path, depth int) error {
	if d.opt.MaxDepth > 0 && depth > d.opt.MaxDepth {
		return wirecodec.Issues{{Path: p.String(), Code: wirecodec.CodeParseError, Message: "max depth exceeded"}}
	}
	return nil
}

func (d decoder) array(p wirecodec.Path, depth int) (wirecodec.Value, error) {
	if err := d.checkDepth(p, depth); err != nil {
		return wirecodec.Value{}, err
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return wirecodec.Value{}, d.fail(p, err)
	}
	items := make([]wirecodec.Value, 0, max(n, 0))
	for i := 0; i < n; i++ {
		v, err := d.value(p.Index(i), depth)
		if err != nil {
			return wirecodec.Value{}, err
		}
		items = append(items, v)
	}
	return wirecodec.Array(items...), nil
}

func (d decoder) object(p wirecodec.Path, depth int) (wirecodec.Value, error) {
	if err := d.checkDepth(p, depth); err != nil {
		return wirecodec.Value{}, err
	}
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return wirecodec.Value{}, d.fail(p, err)
	}
	b := wirecodec.NewObjectBuilder(max(n, 0))
	for i := 0; i < n; i++ {
		kc, err := d.dec.PeekCode()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		if !msgpcode.IsString(kc) {
			return wirecodec.Value{}, d.fail(p, fmt.Errorf("map key must be a string, got code 0x%02x", kc))
		}
		key, err := d.dec.DecodeString()
		if err != nil {
			return wirecodec.Value{}, d.fail(p, err)
		}
		kp := p.Field(key)
		if b.Has(key) {
			switch d.opt.Strictness.OnDuplicateKey {
			case wirecodec.Error:
				return wirecodec.Value{}, wirecodec.Issues{{Path: kp.String(), Code: wirecodec.CodeDuplicateKey, Message: "duplicate key " + key}}
			case wirecodec.Warn:
				if d.opt.OnWarning != nil {
					d.opt.OnWarning(wirecodec.Issue{Path: kp.String(), Code: wirecodec.CodeDuplicateKey, Message: "duplicate key " + key})
				}
			}
		}
		v, err := d.value(kp, depth)
		if err != nil {
			return wirecodec.Value{}, err
		}
		b.Set(key, v)
	}
	return b.Build(), nil
}
