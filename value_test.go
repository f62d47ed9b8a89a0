package wirecodec_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirecodec "github.com/reoring/wirecodec"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		isInt   bool
		want    string
		wantI64 bool
	}{
		{"42", true, "42", true},
		{"-7", true, "-7", true},
		{"1.5", false, "1.5", false},
		{"1e2", false, "100", true},
		{"9223372036854775807", true, "9223372036854775807", true},
		{"9223372036854775808", true, "9223372036854775808", false},
		{"18446744073709551615", true, "18446744073709551615", false},
		{"18446744073709551616", false, "1.8446744073709552e+19", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := wirecodec.ParseNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.isInt, n.IsInt())
			assert.Equal(t, tt.want, n.String())
			_, ok := n.Int64()
			assert.Equal(t, tt.wantI64, ok)
		})
	}

	_, err := wirecodec.ParseNumber("abc")
	assert.Error(t, err)
}

func TestNumber_Int64RejectsNonFinite(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 0.5} {
		_, ok := wirecodec.FloatNumber(f).Int64()
		assert.False(t, ok, "%v", f)
	}
}

func TestNumber_Uint64(t *testing.T) {
	tests := []struct {
		name string
		n    wirecodec.Number
		want uint64
		ok   bool
	}{
		{"small uint", wirecodec.UintNumber(5), 5, true},
		{"max uint", wirecodec.UintNumber(math.MaxUint64), math.MaxUint64, true},
		{"int", wirecodec.IntNumber(9), 9, true},
		{"negative int", wirecodec.IntNumber(-1), 0, false},
		{"integral float", wirecodec.FloatNumber(1 << 63), 1 << 63, true},
		{"fraction", wirecodec.FloatNumber(1.5), 0, false},
		{"float 2^64", wirecodec.FloatNumber(18446744073709551616.0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.n.Uint64()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	small := wirecodec.UintNumber(5)
	i, ok := small.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(5), i)

	_, ok = wirecodec.UintNumber(1<<63 + 1).Int64()
	assert.False(t, ok)
	assert.True(t, wirecodec.Equal(wirecodec.Uint(5), wirecodec.Int(5)))
	assert.False(t, wirecodec.Equal(wirecodec.Uint(1<<63+1), wirecodec.Uint(1<<63)))
	assert.True(t, wirecodec.Equal(wirecodec.Uint(1<<63), wirecodec.Float(1<<63)))
}

func TestValue_Scalars(t *testing.T) {
	assert.True(t, wirecodec.Null().IsNull())
	assert.True(t, wirecodec.Value{}.IsNull())

	b, ok := wirecodec.Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	s, ok := wirecodec.String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	n, ok := wirecodec.Int(3).AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(3), n.Float64())

	_, ok = wirecodec.Int(3).AsString()
	assert.False(t, ok)
	_, ok = wirecodec.String("3").AsNumber()
	assert.False(t, ok)

	assert.Equal(t, "object", wirecodec.KindObject.String())
	assert.Equal(t, "boolean", wirecodec.Bool(false).Kind().String())
}

func TestValue_ArrayIsCopied(t *testing.T) {
	items := []wirecodec.Value{wirecodec.Int(1), wirecodec.Int(2)}
	v := wirecodec.Array(items...)
	items[0] = wirecodec.Int(99)

	got, ok := v.AsArray()
	require.True(t, ok)
	got[1] = wirecodec.Int(42)

	first, _ := v.At(0)
	second, _ := v.At(1)
	assert.Equal(t, "1", first.String())
	assert.Equal(t, "2", second.String())
	assert.Equal(t, 2, v.Len())

	_, ok = v.At(2)
	assert.False(t, ok)
}

func TestObject_InsertionOrderAndOverwrite(t *testing.T) {
	v := wirecodec.Object(
		wirecodec.Member{Key: "b", Value: wirecodec.Int(1)},
		wirecodec.Member{Key: "a", Value: wirecodec.Int(2)},
		wirecodec.Member{Key: "b", Value: wirecodec.Int(3)},
	)
	assert.Equal(t, []string{"b", "a"}, v.Keys())
	assert.Equal(t, `{"b":3,"a":2}`, v.String())

	got, ok := v.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "3", got.String())
	assert.False(t, v.Has("c"))
	_, ok = wirecodec.Int(1).Lookup("b")
	assert.False(t, ok)

	members, ok := v.AsObject()
	require.True(t, ok)
	members[0].Key = "mutated"
	assert.Equal(t, []string{"b", "a"}, v.Keys())
}

func TestObjectBuilder(t *testing.T) {
	b := wirecodec.NewObjectBuilder(2)
	assert.False(t, b.Has("k"))
	b.Set("k", wirecodec.Int(1)).Set("j", wirecodec.Null())
	assert.True(t, b.Has("k"))
	assert.Equal(t, 2, b.Len())

	v := b.Build()
	assert.True(t, v.IsObject())
	assert.Equal(t, `{"k":1,"j":null}`, v.String())
}

func TestEmptyObject(t *testing.T) {
	v := wirecodec.EmptyObject()
	assert.True(t, v.IsObject())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, "{}", v.String())
	assert.False(t, v.Has("x"))

	members, ok := v.AsObject()
	assert.True(t, ok)
	assert.Empty(t, members)
}

func TestValue_Range(t *testing.T) {
	v := wirecodec.Object(
		wirecodec.Member{Key: "a", Value: wirecodec.Int(1)},
		wirecodec.Member{Key: "b", Value: wirecodec.Int(2)},
		wirecodec.Member{Key: "c", Value: wirecodec.Int(3)},
	)
	var seen []string
	v.Range(func(k string, _ wirecodec.Value) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestEqual(t *testing.T) {
	a := wirecodec.Object(
		wirecodec.Member{Key: "x", Value: wirecodec.Int(1)},
		wirecodec.Member{Key: "y", Value: wirecodec.Array(wirecodec.String("s"), wirecodec.Null())},
	)
	b := wirecodec.Object(
		wirecodec.Member{Key: "y", Value: wirecodec.Array(wirecodec.String("s"), wirecodec.Null())},
		wirecodec.Member{Key: "x", Value: wirecodec.Float(1)},
	)
	assert.True(t, wirecodec.Equal(a, b))

	tests := []struct {
		name string
		a, b wirecodec.Value
	}{
		{"kind", wirecodec.Int(1), wirecodec.String("1")},
		{"number", wirecodec.Int(1), wirecodec.Int(2)},
		{"array length", wirecodec.Array(wirecodec.Null()), wirecodec.Array()},
		{"array element", wirecodec.Array(wirecodec.Bool(true)), wirecodec.Array(wirecodec.Bool(false))},
		{"object key", wirecodec.Object(wirecodec.Member{Key: "a", Value: wirecodec.Null()}), wirecodec.Object(wirecodec.Member{Key: "b", Value: wirecodec.Null()})},
		{"object size", wirecodec.EmptyObject(), wirecodec.Object(wirecodec.Member{Key: "b", Value: wirecodec.Null()})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, wirecodec.Equal(tt.a, tt.b))
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	v := wirecodec.Object(
		wirecodec.Member{Key: "s", Value: wirecodec.String("a\"b<\n")},
		wirecodec.Member{Key: "n", Value: wirecodec.Float(1.25)},
		wirecodec.Member{Key: "t", Value: wirecodec.Bool(true)},
		wirecodec.Member{Key: "z", Value: wirecodec.Null()},
		wirecodec.Member{Key: "l", Value: wirecodec.Array()},
	)
	b, err := json.Marshal(v)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "a\"b<\n", back["s"])
	assert.Equal(t, 1.25, back["n"])
	assert.Equal(t, true, back["t"])
	assert.Nil(t, back["z"])
	assert.Equal(t, []any{}, back["l"])

	_, err = wirecodec.Float(math.NaN()).MarshalJSON()
	assert.Error(t, err)
	assert.Contains(t, wirecodec.Float(math.Inf(1)).String(), "<invalid")
}

func TestFromAny_Any(t *testing.T) {
	in := map[string]any{
		"b": []any{int64(1), 2.5, "x", nil, true},
		"a": map[string]any{"n": json.Number("12")},
	}
	v, err := wirecodec.FromAny(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	assert.Equal(t, `{"a":{"n":12},"b":[1,2.5,"x",null,true]}`, v.String())

	back := v.Any().(map[string]any)
	assert.Equal(t, []any{int64(1), 2.5, "x", nil, true}, back["b"])
	assert.Equal(t, map[string]any{"n": int64(12)}, back["a"])

	big, err := wirecodec.FromAny(uint64(math.MaxUint64))
	require.NoError(t, err)
	n, _ := big.AsNumber()
	u, ok := n.Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), u)
	assert.Equal(t, uint64(math.MaxUint64), big.Any())

	small, err := wirecodec.FromAny(uint(7))
	require.NoError(t, err)
	assert.Equal(t, "7", small.String())
	assert.Equal(t, int64(7), small.Any())

	_, err = wirecodec.FromAny(struct{}{})
	assert.Error(t, err)
	_, err = wirecodec.FromAny([]any{make(chan int)})
	assert.Error(t, err)
}

func TestOption(t *testing.T) {
	none := wirecodec.None[int]()
	assert.False(t, none.IsSome())
	assert.Equal(t, 0, none.OrZero())
	_, ok := none.Get()
	assert.False(t, ok)

	var zero wirecodec.Option[string]
	assert.False(t, zero.IsSome())

	some := wirecodec.Some(7)
	got, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, got)
	assert.Equal(t, 7, some.OrZero())
}
