package dsl_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirecodec "github.com/reoring/wirecodec"
	g "github.com/reoring/wirecodec/dsl"
	js "github.com/reoring/wirecodec/jsonschema"
)

func TestString_DecodeEncode(t *testing.T) {
	s := g.String()

	v, err := s.Decode(wirecodec.String("hello"), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.True(t, wirecodec.Equal(wirecodec.String("hello"), s.Encode("hello")))

	_, err = s.Decode(wirecodec.Int(1), wirecodec.Root().Field("name"))
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, wirecodec.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)
	assert.Equal(t, "number", iss[0].Params["got"])
}

type userID string

func TestStringOf_NamedType(t *testing.T) {
	c := g.StringOf[userID]()
	v, err := c.Decode(wirecodec.String("u_1"), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, userID("u_1"), v)
}

func TestBool_RejectsString(t *testing.T) {
	c := g.Bool()
	v, err := c.Decode(wirecodec.Bool(true), wirecodec.Root())
	require.NoError(t, err)
	assert.True(t, v)

	_, err = c.Decode(wirecodec.String("true"), wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeInvalidType))
}

func TestInt32_Range(t *testing.T) {
	c := g.Int32()
	cases := []struct {
		name string
		in   wirecodec.Value
		want int32
		code string
	}{
		{name: "max", in: wirecodec.Int(math.MaxInt32), want: math.MaxInt32},
		{name: "min", in: wirecodec.Int(math.MinInt32), want: math.MinInt32},
		{name: "integral float", in: wirecodec.Float(12), want: 12},
		{name: "above max", in: wirecodec.Int(math.MaxInt32 + 1), code: wirecodec.CodeOverflow},
		{name: "below min", in: wirecodec.Int(math.MinInt32 - 1), code: wirecodec.CodeOverflow},
		{name: "fraction", in: wirecodec.Float(1.5), code: wirecodec.CodeOverflow},
		{name: "string", in: wirecodec.String("1"), code: wirecodec.CodeInvalidType},
		{name: "null", in: wirecodec.Null(), code: wirecodec.CodeInvalidType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Decode(tc.in, wirecodec.Root().Field("bar"))
			if tc.code == "" {
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
				return
			}
			iss, ok := wirecodec.AsIssues(err)
			require.True(t, ok, "expected Issues, got %v", err)
			require.Len(t, iss, 1)
			assert.Equal(t, tc.code, iss[0].Code)
			assert.Equal(t, "/bar", iss[0].Path)
		})
	}
}

func TestInt64_LargeFloatOverflows(t *testing.T) {
	v, err := wirecodec.ParseJSON([]byte(`1e19`))
	require.NoError(t, err)
	_, err = g.Int64().Decode(v, wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))
}

func TestUint_Range(t *testing.T) {
	_, err := g.Uint8().Decode(wirecodec.Int(256), wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))

	_, err = g.Uint16().Decode(wirecodec.Int(-1), wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))

	v, err := wirecodec.ParseJSON([]byte(`9223372036854775808`))
	require.NoError(t, err)
	got, err := g.Uint64().Decode(v, wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, got)

	v, err = wirecodec.ParseJSON([]byte(`18446744073709551616`))
	require.NoError(t, err)
	_, err = g.Uint64().Decode(v, wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))
}

func TestUint64_AboveInt64RoundTrips(t *testing.T) {
	for _, u := range []uint64{math.MaxUint64, 1<<63 + 1, 1 << 63} {
		out := g.Uint64().Encode(u)
		n, ok := out.AsNumber()
		require.True(t, ok)
		assert.True(t, n.IsInt())

		got, err := g.Uint64().Decode(out, wirecodec.Root())
		require.NoError(t, err)
		assert.Equal(t, u, got)

		b, err := out.MarshalJSON()
		require.NoError(t, err)
		v, err := wirecodec.ParseJSON(b)
		require.NoError(t, err)
		got, err = g.Uint64().Decode(v, wirecodec.Root())
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}

	assert.Equal(t, "18446744073709551615", g.Uint64().Encode(math.MaxUint64).String())

	_, err := g.Int64().Decode(g.Uint64().Encode(1<<63+1), wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))
}

func TestFloat32_Overflow(t *testing.T) {
	_, err := g.Float32().Decode(wirecodec.Float(math.MaxFloat64), wirecodec.Root())
	assert.True(t, wirecodec.HasCode(err, wirecodec.CodeOverflow))

	v, err := g.Float32().Decode(wirecodec.Float(0.5), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)
}

func TestFloat64_AcceptsIntegers(t *testing.T) {
	v, err := g.Float64().Decode(wirecodec.Int(3), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)
}

func TestOverflow_MessageNamesTarget(t *testing.T) {
	_, err := g.Int8().Decode(wirecodec.Int(300), wirecodec.Root().Field("n"))
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	assert.True(t, strings.Contains(iss[0].Message, "int8"), iss[0].Message)
	assert.Equal(t, float64(math.MaxInt8), iss[0].Params["max"])
}

func TestTransform_DomainType(t *testing.T) {
	type celsius float64
	c := g.Transform(g.Float64(), func(f float64) celsius { return celsius(f) }, func(c celsius) float64 { return float64(c) })

	v, err := c.Decode(wirecodec.Float(21.5), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, celsius(21.5), v)
	assert.True(t, wirecodec.Equal(wirecodec.Float(21.5), c.Encode(21.5)))
	assert.Equal(t, "number", js.Of(c).Type)
}

func TestPrimitives_JSONSchema(t *testing.T) {
	assert.Equal(t, "string", js.Of(g.String()).Type)
	assert.Equal(t, "boolean", js.Of(g.Bool()).Type)

	s := js.Of(g.Int32())
	assert.Equal(t, "integer", s.Type)
	require.NotNil(t, s.Minimum)
	require.NotNil(t, s.Maximum)
	assert.Equal(t, float64(math.MinInt32), *s.Minimum)
	assert.Equal(t, float64(math.MaxInt32), *s.Maximum)
}
