// Package wirecodec provides:
//
// - A generic document tree (Value) with JSON, YAML and MessagePack readers
// - Typed codecs (Codec[T]) that map Values to domain types and back
// - A stable error model via Issues (JSON Pointer, code, message)
// - Document enforcement while reading: duplicate keys, nesting depth and size
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the codec DSL under dsl/, extra leaf codecs under codec/, and the CLI under cmd/wirecodec.
// - Codecs stop at the first failure and never log.
//
// Typical usage:
//
//	msg, err := wirecodec.DecodeJSON[blueprint.Message](blueprint.MessageCodec, data)
//	out, err := wirecodec.EncodeJSON[blueprint.Message](blueprint.MessageCodec, msg)
//
//	v, err := wirecodec.ParseJSON(data, wirecodec.ParseOpt{MaxDepth: 64})
//	msg, err = blueprint.MessageCodec.Decode(v, wirecodec.Root())
package wirecodec
