package dsl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirecodec "github.com/reoring/wirecodec"
	g "github.com/reoring/wirecodec/dsl"
	js "github.com/reoring/wirecodec/jsonschema"
)

type item struct {
	Name  string
	Price wirecodec.Option[int32]
	Tags  wirecodec.Option[[]string]
}

func itemCodec() *g.StructCodec[item] {
	return g.Struct[item]("item").
		Describe("catalog item").
		Field(
			g.Required("name", g.String(), func(i *item) *string { return &i.Name }).Describe("display name"),
			g.Optional("price", g.Int32(), func(i *item) *wirecodec.Option[int32] { return &i.Price }),
			g.Optional("tags", g.List(g.String()), func(i *item) *wirecodec.Option[[]string] { return &i.Tags }),
		).
		MustBuild()
}

type order struct {
	ID    string
	Items []item
}

func orderCodec() *g.StructCodec[order] {
	return g.Struct[order]("order").
		Field(
			g.Required("id", g.String(), func(o *order) *string { return &o.ID }),
			g.Required("items", g.List[item](itemCodec()), func(o *order) *[]item { return &o.Items }),
		).
		MustBuild()
}

func mustParse(t *testing.T, doc string) wirecodec.Value {
	t.Helper()
	v, err := wirecodec.ParseJSON([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestStruct_DecodeRequiredAndOptional(t *testing.T) {
	c := itemCodec()

	got, err := c.Decode(mustParse(t, `{"name":"pen","price":120}`), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, "pen", got.Name)
	price, ok := got.Price.Get()
	assert.True(t, ok)
	assert.Equal(t, int32(120), price)
	assert.False(t, got.Tags.IsSome())
}

func TestStruct_EncodeOmitsAbsentOptionals(t *testing.T) {
	c := itemCodec()

	out := c.Encode(item{Name: "pen"})
	assert.Equal(t, []string{"name"}, out.Keys())

	out = c.Encode(item{Name: "pen", Price: wirecodec.Some[int32](5), Tags: wirecodec.Some([]string{"a"})})
	assert.Equal(t, []string{"name", "price", "tags"}, out.Keys())
	assert.Equal(t, `{"name":"pen","price":5,"tags":["a"]}`, out.String())
}

func TestStruct_RoundTrip(t *testing.T) {
	c := itemCodec()
	in := item{Name: "pen", Price: wirecodec.Some[int32](-3), Tags: wirecodec.Some([]string{})}

	got, err := c.Decode(c.Encode(in), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestStruct_MissingRequired(t *testing.T) {
	_, err := itemCodec().Decode(mustParse(t, `{"price":1}`), wirecodec.Root())
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, wirecodec.CodeRequired, iss[0].Code)
	assert.Equal(t, "/name", iss[0].Path)
	assert.Equal(t, "failed to decode 'item' at '/': required field 'name' missing", iss[0].Message)
}

func TestStruct_NotAnObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"x"`, `null`, `1`} {
		_, err := itemCodec().Decode(mustParse(t, doc), wirecodec.Root())
		assert.True(t, wirecodec.HasCode(err, wirecodec.CodeNotAnObject), doc)
	}
}

func TestStruct_ExtraKeysIgnored(t *testing.T) {
	got, err := itemCodec().Decode(mustParse(t, `{"name":"pen","color":"red"}`), wirecodec.Root())
	require.NoError(t, err)
	assert.Equal(t, "pen", got.Name)
}

func TestStruct_PresentNullOptionalFails(t *testing.T) {
	_, err := itemCodec().Decode(mustParse(t, `{"name":"pen","price":null}`), wirecodec.Root())
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, wirecodec.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "/price", iss[0].Path)
}

func TestStruct_FailFastInDeclarationOrder(t *testing.T) {
	// name is declared before price, so the missing name is reported even
	// though price is also invalid.
	_, err := itemCodec().Decode(mustParse(t, `{"price":"oops"}`), wirecodec.Root())
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, "/name", iss[0].Path)
}

func TestStruct_NestedErrorPath(t *testing.T) {
	doc := `{"id":"o1","items":[{"name":"a"},{"name":"b","price":99999999999}]}`
	_, err := orderCodec().Decode(mustParse(t, doc), wirecodec.Root())
	iss, ok := wirecodec.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, wirecodec.CodeOverflow, iss[0].Code)
	assert.Equal(t, "/items/1/price", iss[0].Path)
}

func TestStruct_BuildErrors(t *testing.T) {
	_, err := g.Struct[item]("item").
		Field(
			g.Required("name", g.String(), func(i *item) *string { return &i.Name }),
			g.Required("name", g.String(), func(i *item) *string { return &i.Name }),
		).
		Build()
	assert.True(t, errors.Is(err, g.ErrDuplicateWireKey))

	_, err = g.Struct[item]("item").
		Field(g.Required("", g.String(), func(i *item) *string { return &i.Name })).
		Build()
	assert.True(t, errors.Is(err, g.ErrEmptyWireKey))

	_, err = g.Struct[item]("item").Field(g.FieldDescriptor[item]{WireKey: "x"}).Build()
	assert.Error(t, err)
}

func TestStruct_EmptyRecord(t *testing.T) {
	c := g.Struct[struct{}]("empty").MustBuild()
	out := c.Encode(struct{}{})
	assert.Equal(t, "{}", out.String())
	_, err := c.Decode(mustParse(t, `{"anything":1}`), wirecodec.Root())
	assert.NoError(t, err)
}

func TestStruct_FieldsCopy(t *testing.T) {
	c := itemCodec()
	fs := c.Fields()
	require.Len(t, fs, 3)
	fs[0].WireKey = "mutated"
	assert.Equal(t, "name", c.Fields()[0].WireKey)
	assert.True(t, c.Fields()[0].Required)
	assert.False(t, c.Fields()[1].Required)
}

func TestStruct_JSONSchema(t *testing.T) {
	s := js.Of(itemCodec())
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "item", s.Title)
	assert.Equal(t, "catalog item", s.Description)
	assert.Equal(t, []string{"name"}, s.Required)
	require.Contains(t, s.Properties, "tags")
	assert.Equal(t, "array", s.Properties["tags"].Type)
	assert.Equal(t, "display name", s.Properties["name"].Description)
}
