package wirecodec

import (
	"math"
	"strconv"
)

// Kind identifies the runtime shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Number holds a JSON number as an exact int64, an exact uint64 above
// math.MaxInt64, or a float64.
type Number struct {
	i      int64
	u      uint64
	f      float64
	isInt  bool
	isUint bool
}

// IntNumber returns an exact integer Number.
func IntNumber(i int64) Number { return Number{i: i, isInt: true} }

// UintNumber returns an exact unsigned integer Number. Values that fit into
// int64 are stored as IntNumber.
func UintNumber(u uint64) Number {
	if u <= math.MaxInt64 {
		return IntNumber(int64(u))
	}
	return Number{u: u, isUint: true}
}

// FloatNumber returns a floating point Number.
func FloatNumber(f float64) Number { return Number{f: f} }

// ParseNumber interprets JSON number text. Integers that fit into int64 or
// uint64 stay exact; everything else is parsed as float64.
func ParseNumber(text string) (Number, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntNumber(i), nil
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return UintNumber(u), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Number{}, err
	}
	return FloatNumber(f), nil
}

// IsInt reports whether the number was stored as an exact integer.
func (n Number) IsInt() bool { return n.isInt || n.isUint }

// Int64 returns the number as an int64 when that is lossless.
func (n Number) Int64() (int64, bool) {
	if n.isInt {
		return n.i, true
	}
	if n.isUint {
		return 0, false
	}
	if n.f != math.Trunc(n.f) || math.IsInf(n.f, 0) || math.IsNaN(n.f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
	if n.f < math.MinInt64 || n.f >= math.MaxInt64 {
		return 0, false
	}
	return int64(n.f), true
}

// 2^64 as a float64; every non-negative float below it converts exactly.
const twoTo64 = 18446744073709551616.0

// Uint64 returns the number as a uint64 when that is lossless.
func (n Number) Uint64() (uint64, bool) {
	switch {
	case n.isUint:
		return n.u, true
	case n.isInt:
		if n.i < 0 {
			return 0, false
		}
		return uint64(n.i), true
	}
	if n.f != math.Trunc(n.f) || n.f < 0 || n.f >= twoTo64 {
		return 0, false
	}
	return uint64(n.f), true
}

// Float64 returns the number as a float64. Large integers may lose precision.
func (n Number) Float64() float64 {
	switch {
	case n.isInt:
		return float64(n.i)
	case n.isUint:
		return float64(n.u)
	}
	return n.f
}

// String renders the number using JSON number syntax.
func (n Number) String() string {
	switch {
	case n.isInt:
		return strconv.FormatInt(n.i, 10)
	case n.isUint:
		return strconv.FormatUint(n.u, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func (n Number) equal(o Number) bool {
	if n.IsInt() && o.IsInt() {
		return n.isInt == o.isInt && n.i == o.i && n.u == o.u
	}
	return n.Float64() == o.Float64()
}

// Member is a single key/value entry of an object Value.
type Member struct {
	Key   string
	Value Value
}

type object struct {
	members []Member
	index   map[string]int
}

// Value is an immutable node of a parsed document tree. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    Number
	s    string
	arr  []Value
	obj  *object
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer number Value.
func Int(i int64) Value { return Value{kind: KindNumber, n: IntNumber(i)} }

// Uint returns an unsigned integer number Value.
func Uint(u uint64) Value { return Value{kind: KindNumber, n: UintNumber(u)} }

// Float returns a floating point number Value.
func Float(f float64) Value { return Value{kind: KindNumber, n: FloatNumber(f)} }

// NumberValue wraps a Number.
func NumberValue(n Number) Value { return Value{kind: KindNumber, n: n} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array Value holding a copy of items.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, arr: cp}
}

// Object returns an object Value. When a key repeats, the later value replaces
// the earlier one at the earlier position.
func Object(members ...Member) Value {
	b := NewObjectBuilder(len(members))
	for _, m := range members {
		b.Set(m.Key, m.Value)
	}
	return b.Build()
}

// EmptyObject returns {}. Unit union variants encode to it.
func EmptyObject() Value { return Value{kind: KindObject, obj: &object{}} }

// ObjectBuilder accumulates members for an object Value in insertion order.
// A builder must not be used after Build.
type ObjectBuilder struct {
	obj *object
}

// NewObjectBuilder returns a builder with room for n members.
func NewObjectBuilder(n int) *ObjectBuilder {
	return &ObjectBuilder{obj: &object{members: make([]Member, 0, n), index: make(map[string]int, n)}}
}

// Set adds or replaces key.
func (b *ObjectBuilder) Set(key string, v Value) *ObjectBuilder {
	if i, ok := b.obj.index[key]; ok {
		b.obj.members[i].Value = v
		return b
	}
	b.obj.index[key] = len(b.obj.members)
	b.obj.members = append(b.obj.members, Member{Key: key, Value: v})
	return b
}

// Has reports whether key has been set.
func (b *ObjectBuilder) Has(key string) bool {
	_, ok := b.obj.index[key]
	return ok
}

// Len returns the number of members set so far.
func (b *ObjectBuilder) Len() int { return len(b.obj.members) }

// Build returns the object Value.
func (b *ObjectBuilder) Build() Value {
	v := Value{kind: KindObject, obj: b.obj}
	b.obj = nil
	return v
}

// Kind returns the runtime kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload when v is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsNumber returns the number payload when v is a number.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return Number{}, false
	}
	return v.n, true
}

// AsString returns the string payload when v is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns a copy of the elements when v is an array.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp, true
}

// Len returns the number of array elements or object members, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		if v.obj == nil {
			return 0
		}
		return len(v.obj.members)
	}
	return 0
}

// At returns the i-th array element.
func (v Value) At(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// AsObject returns a copy of the members in insertion order when v is an object.
func (v Value) AsObject() ([]Member, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	if v.obj == nil {
		return []Member{}, true
	}
	cp := make([]Member, len(v.obj.members))
	copy(cp, v.obj.members)
	return cp, true
}

// Lookup returns the member stored under key. A missing key or a non-object
// receiver yields ok == false.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject || v.obj == nil || v.obj.index == nil {
		return Value{}, false
	}
	i, ok := v.obj.index[key]
	if !ok {
		return Value{}, false
	}
	return v.obj.members[i].Value, true
}

// Has reports whether the object v contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// Keys returns object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject || v.obj == nil {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.Key
	}
	return keys
}

// Range calls fn for each object member in insertion order until fn returns false.
func (v Value) Range(fn func(key string, val Value) bool) {
	if v.kind != KindObject || v.obj == nil {
		return
	}
	for _, m := range v.obj.members {
		if !fn(m.Key, m.Value) {
			return
		}
	}
}

// Equal reports structural equality. Object member order is ignored and
// numbers compare by numeric value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n.equal(b.n)
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.Len() != b.Len() {
			return false
		}
		eq := true
		a.Range(func(k string, av Value) bool {
			bv, ok := b.Lookup(k)
			eq = ok && Equal(av, bv)
			return eq
		})
		return eq
	}
	return false
}
