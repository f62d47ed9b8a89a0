package dsl

import (
	"fmt"
	"strings"

	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

// VariantDescriptor describes one variant of union type U. A variant without
// a payload codec is a unit variant: the presence of its key alone selects it.
type VariantDescriptor[U any] struct {
	WireKey     string
	Description string

	payload bool
	// encode returns the wire value under WireKey when u is this variant.
	encode func(u U) (wirecodec.Value, bool)
	decode func(v wirecodec.Value, p wirecodec.Path) (U, error)
	schema func() *js.Schema
}

// HasPayload reports whether the variant carries a payload codec.
func (d VariantDescriptor[U]) HasPayload() bool { return d.payload }

// Describe returns a copy of d carrying a description for schema export.
func (d VariantDescriptor[U]) Describe(desc string) VariantDescriptor[U] {
	d.Description = desc
	return d
}

// Payload declares a variant whose payload P is encoded with c under wireKey.
// wrap builds the union value from a decoded payload and unwrap recognizes the
// variant on encode.
func Payload[U, P any](wireKey string, c wirecodec.Codec[P], wrap func(P) U, unwrap func(U) (P, bool)) VariantDescriptor[U] {
	return VariantDescriptor[U]{
		WireKey: wireKey,
		payload: true,
		encode: func(u U) (wirecodec.Value, bool) {
			pv, ok := unwrap(u)
			if !ok {
				return wirecodec.Value{}, false
			}
			return c.Encode(pv), true
		},
		decode: func(v wirecodec.Value, p wirecodec.Path) (U, error) {
			pv, err := c.Decode(v, p)
			if err != nil {
				var zero U
				return zero, err
			}
			return wrap(pv), nil
		},
		schema: func() *js.Schema { return js.Of(c) },
	}
}

// Unit declares a variant without payload. It encodes as {wireKey: {}} and
// decodes to value whatever accompanies the key.
func Unit[U any](wireKey string, value U, is func(U) bool) VariantDescriptor[U] {
	return VariantDescriptor[U]{
		WireKey: wireKey,
		encode: func(u U) (wirecodec.Value, bool) {
			if !is(u) {
				return wirecodec.Value{}, false
			}
			return wirecodec.EmptyObject(), true
		},
		decode: func(wirecodec.Value, wirecodec.Path) (U, error) { return value, nil },
		// the payload is ignored on decode, so any value is accepted
		schema: func() *js.Schema { return &js.Schema{} },
	}
}

// Is returns a matcher for sealed-interface unions that reports whether u
// holds a V.
func Is[U, V any]() func(U) bool {
	return func(u U) bool {
		_, ok := any(u).(V)
		return ok
	}
}

// As returns an unwrap function for sealed-interface unions whose variant
// type V is itself the payload.
func As[U, V any]() func(U) (V, bool) {
	return func(u U) (V, bool) {
		v, ok := any(u).(V)
		return v, ok
	}
}

// UnionBuilder collects variant descriptors for a union type.
type UnionBuilder[U any] struct {
	name        string
	description string
	variants    []VariantDescriptor[U]
}

// Union starts a union schema. name is the schema name used in error messages.
func Union[U any](name string) *UnionBuilder[U] { return &UnionBuilder[U]{name: name} }

// Describe sets the union description exported to JSON Schema.
func (b *UnionBuilder[U]) Describe(desc string) *UnionBuilder[U] {
	b.description = desc
	return b
}

// Variant appends descriptors. Declaration order decides which variant wins
// when an input object carries keys of several variants.
func (b *UnionBuilder[U]) Variant(vs ...VariantDescriptor[U]) *UnionBuilder[U] {
	b.variants = append(b.variants, vs...)
	return b
}

// Build validates the descriptors and returns the codec. Repeated wire keys
// are accepted; only the first declaration is reachable on decode.
func (b *UnionBuilder[U]) Build() (*UnionCodec[U], error) {
	if len(b.variants) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoVariants, b.name)
	}
	for _, v := range b.variants {
		if v.WireKey == "" {
			return nil, fmt.Errorf("%w in union %q", ErrEmptyWireKey, b.name)
		}
		if v.encode == nil || v.decode == nil {
			return nil, fmt.Errorf("dsl: variant %q in union %q was not built with Payload or Unit", v.WireKey, b.name)
		}
	}
	vs := make([]VariantDescriptor[U], len(b.variants))
	copy(vs, b.variants)
	keys := make([]string, len(vs))
	for i, v := range vs {
		keys[i] = v.WireKey
	}
	return &UnionCodec[U]{name: b.name, description: b.description, variants: vs, keys: keys}, nil
}

// MustBuild is like Build but panics on error.
func (b *UnionBuilder[U]) MustBuild() *UnionCodec[U] {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// UnionCodec converts between single-key objects and values of union type U.
type UnionCodec[U any] struct {
	name        string
	description string
	variants    []VariantDescriptor[U]
	keys        []string
}

// Name returns the schema name.
func (u *UnionCodec[U]) Name() string { return u.name }

// Variants returns a copy of the variant descriptors in declaration order.
func (u *UnionCodec[U]) Variants() []VariantDescriptor[U] {
	out := make([]VariantDescriptor[U], len(u.variants))
	copy(out, u.variants)
	return out
}

// WireKeys returns the declared wire keys in declaration order.
func (u *UnionCodec[U]) WireKeys() []string { return append([]string(nil), u.keys...) }

// Encode produces {wireKey: payload} for the active variant. A value that
// matches no variant (for example a nil interface) encodes as null.
func (u *UnionCodec[U]) Encode(val U) wirecodec.Value {
	for _, d := range u.variants {
		if pv, ok := d.encode(val); ok {
			return wirecodec.Object(wirecodec.Member{Key: d.WireKey, Value: pv})
		}
	}
	return wirecodec.Null()
}

// Decode selects the first declared variant whose wire key is present in the
// input object. Extra keys, including keys of later variants, are ignored.
func (u *UnionCodec[U]) Decode(v wirecodec.Value, p wirecodec.Path) (U, error) {
	var zero U
	if !v.IsObject() {
		return zero, notAnObject(u.name, v, p)
	}
	for _, d := range u.variants {
		pv, ok := v.Lookup(d.WireKey)
		if !ok {
			continue
		}
		return d.decode(pv, p.Field(d.WireKey))
	}
	expected := u.WireKeys()
	iss := wirecodec.IssueAt(p, wirecodec.CodeUnrecognizedVariant, wirecodec.DecodeContext(u.name, p),
		map[string]string{"expected": strings.Join(expected, ", ")}, map[string]any{"expected": expected})
	iss[0].Hint = "expected exactly one of: " + strings.Join(expected, ", ")
	return zero, iss
}

// JSONSchema projects the union as anyOf objects requiring one variant key.
// Decode accepts objects carrying several variant keys, so the branches are
// not exclusive.
func (u *UnionCodec[U]) JSONSchema() *js.Schema {
	out := &js.Schema{Title: u.name, Description: u.description, AnyOf: make([]*js.Schema, 0, len(u.variants))}
	for _, d := range u.variants {
		ps := d.schema()
		out.AnyOf = append(out.AnyOf, &js.Schema{
			Description:   d.Description,
			Type:          "object",
			Properties:    map[string]*js.Schema{d.WireKey: ps},
			Required:      []string{d.WireKey},
			MinProperties: js.Count(1),
		})
	}
	return out
}
