package wirecodec

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	json "github.com/goccy/go-json"
)

// MarshalJSON renders v as JSON. Object members keep their insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String renders v as compact JSON, or a placeholder when v holds a
// non-finite number.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<invalid: " + err.Error() + ">"
	}
	return string(b)
}

func appendJSON(buf *bytes.Buffer, v Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if !v.n.isInt && (math.IsNaN(v.n.f) || math.IsInf(v.n.f, 0)) {
			return fmt.Errorf("wirecodec: unsupported number %v", v.n.f)
		}
		buf.WriteString(v.n.String())
	case KindString:
		b, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, it := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		var err error
		i := 0
		v.Range(func(k string, mv Value) bool {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			var kb []byte
			if kb, err = json.Marshal(k); err != nil {
				return false
			}
			buf.Write(kb)
			buf.WriteByte(':')
			err = appendJSON(buf, mv)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	return nil
}

// Any converts v into the encoding/json-style representation: nil, bool,
// int64, uint64 or float64, string, []any and map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		switch {
		case v.n.isInt:
			return v.n.i
		case v.n.isUint:
			return v.n.u
		}
		return v.n.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, it := range v.arr {
			out[i] = it.Any()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.Len())
		v.Range(func(k string, mv Value) bool {
			out[k] = mv.Any()
			return true
		})
		return out
	}
	return nil
}

// FromAny builds a Value from an encoding/json-style tree. Map keys are
// sorted because Go maps carry no order.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case fmt.Stringer:
		// json.Number
		if n, err := ParseNumber(t.String()); err == nil {
			return NumberValue(n), nil
		}
		return Value{}, fmt.Errorf("wirecodec: unsupported type %T", x)
	case []any:
		items := make([]Value, len(t))
		for i, it := range t {
			v, err := FromAny(it)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b := NewObjectBuilder(len(keys))
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			b.Set(k, v)
		}
		return b.Build(), nil
	}
	return Value{}, fmt.Errorf("wirecodec: unsupported type %T", x)
}
