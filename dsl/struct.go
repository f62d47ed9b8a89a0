package dsl

import (
	"errors"
	"fmt"

	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

// FieldDescriptor describes one field of record type T: its wire key, whether
// it is required, and how to move its value between T and the wire.
// Descriptors are immutable once built and safe for concurrent use.
type FieldDescriptor[T any] struct {
	WireKey     string
	Required    bool
	Description string

	encode func(*T) (wirecodec.Value, bool)
	decode func(*T, wirecodec.Value, wirecodec.Path) error
	schema func() *js.Schema
}

// Describe returns a copy of f carrying a description for schema export.
func (f FieldDescriptor[T]) Describe(desc string) FieldDescriptor[T] {
	f.Description = desc
	return f
}

// Required declares a required field. sel must return the address of the
// field inside the given record.
//
//	dsl.Required("id", dsl.String(), func(m *Message) *string { return &m.ID })
func Required[T, F any](wireKey string, c wirecodec.Codec[F], sel func(*T) *F) FieldDescriptor[T] {
	return FieldDescriptor[T]{
		WireKey:  wireKey,
		Required: true,
		encode:   func(rec *T) (wirecodec.Value, bool) { return c.Encode(*sel(rec)), true },
		decode: func(rec *T, v wirecodec.Value, p wirecodec.Path) error {
			d, err := c.Decode(v, p)
			if err != nil {
				return err
			}
			*sel(rec) = d
			return nil
		},
		schema: func() *js.Schema { return js.Of(c) },
	}
}

// Optional declares an optional field stored as an Option. An absent Option
// is omitted from the encoded object and a missing key decodes to None.
func Optional[T, F any](wireKey string, c wirecodec.Codec[F], sel func(*T) *wirecodec.Option[F]) FieldDescriptor[T] {
	return FieldDescriptor[T]{
		WireKey: wireKey,
		encode: func(rec *T) (wirecodec.Value, bool) {
			v, ok := sel(rec).Get()
			if !ok {
				return wirecodec.Value{}, false
			}
			return c.Encode(v), true
		},
		decode: func(rec *T, v wirecodec.Value, p wirecodec.Path) error {
			d, err := c.Decode(v, p)
			if err != nil {
				return err
			}
			*sel(rec) = wirecodec.Some(d)
			return nil
		},
		schema: func() *js.Schema { return js.Of(c) },
	}
}

// StructBuilder collects field descriptors for a record type.
type StructBuilder[T any] struct {
	name        string
	description string
	fields      []FieldDescriptor[T]
}

// Struct starts a record schema. name is the schema name used in error messages.
func Struct[T any](name string) *StructBuilder[T] {
	return &StructBuilder[T]{name: name}
}

// Describe sets the record description exported to JSON Schema.
func (b *StructBuilder[T]) Describe(desc string) *StructBuilder[T] {
	b.description = desc
	return b
}

// Field appends descriptors. Declaration order is the encode order and the
// order in which decode checks fields.
func (b *StructBuilder[T]) Field(fs ...FieldDescriptor[T]) *StructBuilder[T] {
	b.fields = append(b.fields, fs...)
	return b
}

var (
	ErrEmptyWireKey     = errors.New("dsl: empty wire key")
	ErrDuplicateWireKey = errors.New("dsl: duplicate wire key")
	ErrNoVariants       = errors.New("dsl: union has no variants")
)

// Build validates the descriptors and returns the codec.
func (b *StructBuilder[T]) Build() (*StructCodec[T], error) {
	seen := make(map[string]struct{}, len(b.fields))
	for _, f := range b.fields {
		if f.WireKey == "" {
			return nil, fmt.Errorf("%w in struct %q", ErrEmptyWireKey, b.name)
		}
		if _, dup := seen[f.WireKey]; dup {
			return nil, fmt.Errorf("%w %q in struct %q", ErrDuplicateWireKey, f.WireKey, b.name)
		}
		if f.encode == nil || f.decode == nil {
			return nil, fmt.Errorf("dsl: field %q in struct %q was not built with Required or Optional", f.WireKey, b.name)
		}
		seen[f.WireKey] = struct{}{}
	}
	fields := make([]FieldDescriptor[T], len(b.fields))
	copy(fields, b.fields)
	return &StructCodec[T]{name: b.name, description: b.description, fields: fields}, nil
}

// MustBuild is like Build but panics on error.
func (b *StructBuilder[T]) MustBuild() *StructCodec[T] {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// StructCodec converts between object Values and records of type T.
type StructCodec[T any] struct {
	name        string
	description string
	fields      []FieldDescriptor[T]
}

var _ wirecodec.Codec[struct{}] = (*StructCodec[struct{}])(nil)

// Name returns the schema name.
func (s *StructCodec[T]) Name() string { return s.name }

// Fields returns a copy of the field descriptors in declaration order.
func (s *StructCodec[T]) Fields() []FieldDescriptor[T] {
	out := make([]FieldDescriptor[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Encode emits one key per present field in declaration order. Absent
// optional fields produce no key.
func (s *StructCodec[T]) Encode(rec T) wirecodec.Value {
	b := wirecodec.NewObjectBuilder(len(s.fields))
	for _, f := range s.fields {
		if v, ok := f.encode(&rec); ok {
			b.Set(f.WireKey, v)
		}
	}
	return b.Build()
}

// Decode reads fields in declaration order and stops at the first failure.
// Keys not described by the schema are ignored.
func (s *StructCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) (T, error) {
	var rec T
	if !v.IsObject() {
		return rec, notAnObject(s.name, v, p)
	}
	for _, f := range s.fields {
		fv, ok := v.Lookup(f.WireKey)
		if !ok {
			if f.Required {
				return rec, wirecodec.IssueAt(p.Field(f.WireKey), wirecodec.CodeRequired, wirecodec.DecodeContext(s.name, p),
					map[string]string{"field": f.WireKey}, map[string]any{"field": f.WireKey})
			}
			continue
		}
		if err := f.decode(&rec, fv, p.Field(f.WireKey)); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// JSONSchema projects the record as an object schema. Unknown keys are
// accepted on decode, so additionalProperties stays open.
func (s *StructCodec[T]) JSONSchema() *js.Schema {
	out := &js.Schema{Title: s.name, Description: s.description, Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
	for _, f := range s.fields {
		fs := *f.schema()
		if f.Description != "" {
			fs.Description = f.Description
		}
		out.Properties[f.WireKey] = &fs
		if f.Required {
			out.Required = append(out.Required, f.WireKey)
		}
	}
	return out
}

func notAnObject(name string, v wirecodec.Value, p wirecodec.Path) wirecodec.Issues {
	iss := wirecodec.IssueAt(p, wirecodec.CodeNotAnObject, wirecodec.DecodeContext(name, p),
		map[string]string{"got": v.Kind().String()}, map[string]any{"got": v.Kind().String()})
	iss[0].Hint = "expected object"
	return iss
}
