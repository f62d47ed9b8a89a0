package dsl

import (
	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

// List returns a codec for arrays whose elements all use elem. Element
// failures are reported under the element index (for example /items/2).
func List[T any](elem wirecodec.Codec[T]) wirecodec.Codec[[]T] { return listCodec[T]{elem: elem} }

type listCodec[T any] struct {
	elem wirecodec.Codec[T]
}

func (l listCodec[T]) Encode(vs []T) wirecodec.Value {
	items := make([]wirecodec.Value, len(vs))
	for i, v := range vs {
		items[i] = l.elem.Encode(v)
	}
	return wirecodec.Array(items...)
}

func (l listCodec[T]) Decode(v wirecodec.Value, p wirecodec.Path) ([]T, error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, wirecodec.TypeMismatch(p, "array", v.Kind())
	}
	out := make([]T, len(items))
	for i, it := range items {
		d, err := l.elem.Decode(it, p.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (l listCodec[T]) JSONSchema() *js.Schema {
	return &js.Schema{Type: "array", Items: js.Of(l.elem)}
}
