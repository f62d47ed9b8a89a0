package codec

import (
	wirecodec "github.com/reoring/wirecodec"
	js "github.com/reoring/wirecodec/jsonschema"
)

// Identity returns a codec that passes the raw Value through unchanged. Use it
// for fields whose shape is not known ahead of time.
func Identity() wirecodec.Codec[wirecodec.Value] { return identityCodec{} }

type identityCodec struct{}

func (identityCodec) Encode(v wirecodec.Value) wirecodec.Value { return v }

func (identityCodec) Decode(v wirecodec.Value, _ wirecodec.Path) (wirecodec.Value, error) {
	return v, nil
}

// JSONSchema accepts any value.
func (identityCodec) JSONSchema() *js.Schema { return &js.Schema{} }
