package dsl

import (
	"math"

	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

type stringCodec[T ~string] struct{}

// String returns the string codec.
func String() wirecodec.Codec[string] { return stringCodec[string]{} }

// StringOf returns a string codec projected to a domain type with underlying string.
func StringOf[T ~string]() wirecodec.Codec[T] { return stringCodec[T]{} }

func (stringCodec[T]) Encode(v T) wirecodec.Value { return wirecodec.String(string(v)) }

func (stringCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	s, ok := v.AsString()
	if !ok {
		return "", wirecodec.TypeMismatch(p, "string", v.Kind())
	}
	return T(s), nil
}

func (stringCodec[T]) JSONSchema() *js.Schema { return &js.Schema{Type: "string"} }

type boolCodec[T ~bool] struct{}

// Bool returns the boolean codec.
func Bool() wirecodec.Codec[bool] { return boolCodec[bool]{} }

// BoolOf returns a boolean codec projected to a domain type with underlying bool.
func BoolOf[T ~bool]() wirecodec.Codec[T] { return boolCodec[T]{} }

func (boolCodec[T]) Encode(v T) wirecodec.Value { return wirecodec.Bool(bool(v)) }

func (boolCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	b, ok := v.AsBool()
	if !ok {
		return false, wirecodec.TypeMismatch(p, "boolean", v.Kind())
	}
	return T(b), nil
}

func (boolCodec[T]) JSONSchema() *js.Schema { return &js.Schema{Type: "boolean"} }

type floatCodec[T ~float32 | ~float64] struct {
	name string
	max  float64
}

// Float64 returns the double-precision codec. Any number is accepted.
func Float64() wirecodec.Codec[float64] {
	return floatCodec[float64]{name: "float64", max: math.MaxFloat64}
}

// Float32 returns the single-precision codec; magnitudes beyond
// math.MaxFloat32 fail with an overflow issue.
func Float32() wirecodec.Codec[float32] {
	return floatCodec[float32]{name: "float32", max: math.MaxFloat32}
}

func (c floatCodec[T]) Encode(v T) wirecodec.Value { return wirecodec.Float(float64(v)) }

func (c floatCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, wirecodec.TypeMismatch(p, "number", v.Kind())
	}
	f := n.Float64()
	if math.Abs(f) > c.max {
		return 0, overflow(p, c.name, n, -c.max, c.max)
	}
	return T(f), nil
}

func (c floatCodec[T]) JSONSchema() *js.Schema { return &js.Schema{Type: "number", Format: c.name} }

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type intCodec[T signed] struct {
	name     string
	min, max int64
}

func Int8() wirecodec.Codec[int8]   { return intCodec[int8]{"int8", math.MinInt8, math.MaxInt8} }
func Int16() wirecodec.Codec[int16] { return intCodec[int16]{"int16", math.MinInt16, math.MaxInt16} }
func Int32() wirecodec.Codec[int32] { return intCodec[int32]{"int32", math.MinInt32, math.MaxInt32} }
func Int64() wirecodec.Codec[int64] { return intCodec[int64]{"int64", math.MinInt64, math.MaxInt64} }
func Int() wirecodec.Codec[int]     { return intCodec[int]{"int", math.MinInt, math.MaxInt} }

// IntOf returns an integer codec for a named type, range-checked against
// [min, max].
func IntOf[T signed](name string, min, max int64) wirecodec.Codec[T] {
	return intCodec[T]{name: name, min: min, max: max}
}

func (c intCodec[T]) Encode(v T) wirecodec.Value { return wirecodec.Int(int64(v)) }

func (c intCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, wirecodec.TypeMismatch(p, "integer", v.Kind())
	}
	i, exact := n.Int64()
	if !exact || i < c.min || i > c.max {
		return 0, overflow(p, c.name, n, float64(c.min), float64(c.max))
	}
	return T(i), nil
}

func (c intCodec[T]) JSONSchema() *js.Schema {
	return &js.Schema{Type: "integer", Format: c.name, Minimum: js.Bound(float64(c.min)), Maximum: js.Bound(float64(c.max))}
}

type uintCodec[T unsigned] struct {
	name string
	max  uint64
}

func Uint8() wirecodec.Codec[uint8]   { return uintCodec[uint8]{"uint8", math.MaxUint8} }
func Uint16() wirecodec.Codec[uint16] { return uintCodec[uint16]{"uint16", math.MaxUint16} }
func Uint32() wirecodec.Codec[uint32] { return uintCodec[uint32]{"uint32", math.MaxUint32} }
func Uint64() wirecodec.Codec[uint64] { return uintCodec[uint64]{"uint64", math.MaxUint64} }
func Uint() wirecodec.Codec[uint]     { return uintCodec[uint]{"uint", math.MaxUint} }

func (c uintCodec[T]) Encode(v T) wirecodec.Value { return wirecodec.Uint(uint64(v)) }

func (c uintCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	n, ok := v.AsNumber()
	if !ok {
		return 0, wirecodec.TypeMismatch(p, "integer", v.Kind())
	}
	u, exact := n.Uint64()
	if !exact || u > c.max {
		return 0, overflow(p, c.name, n, 0, float64(c.max))
	}
	return T(u), nil
}

func (c uintCodec[T]) JSONSchema() *js.Schema {
	return &js.Schema{Type: "integer", Format: c.name, Minimum: js.Bound(0), Maximum: js.Bound(float64(c.max))}
}

func overflow(p wirecodec.Path, target string, got wirecodec.Number, min, max float64) wirecodec.Issues {
	return wirecodec.IssueAt(p, wirecodec.CodeOverflow, wirecodec.DecodeContext(target, p),
		map[string]string{"got": got.String(), "expected": target},
		map[string]any{"min": min, "max": max, "got": got.String()})
}

// Transform adapts c to a domain type B. decode runs after c.Decode succeeds
// and encode runs before c.Encode; both must be total.
func Transform[A, B any](c wirecodec.Codec[A], decode func(A) B, encode func(B) A) wirecodec.Codec[B] {
	return transformCodec[A, B]{inner: c, decode: decode, encode: encode}
}

type transformCodec[A, B any] struct {
	inner  wirecodec.Codec[A]
	decode func(A) B
	encode func(B) A
}

func (t transformCodec[A, B]) Encode(v B) wirecodec.Value { return t.inner.Encode(t.encode(v)) }

func (t transformCodec[A, B]) Decode(v wirecodec.Value, p wirecodec.Path) (B, error) {
	a, err := t.inner.Decode(v, p)
	if err != nil {
		var zero B
		return zero, err
	}
	return t.decode(a), nil
}

func (t transformCodec[A, B]) JSONSchema() *js.Schema { return js.Of(t.inner) }
