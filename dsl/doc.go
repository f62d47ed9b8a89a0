// Package dsl declares codecs for records and tagged unions without runtime
// reflection.
//
// Overview
//   - Primitives: String()/Bool()/Int32()/Uint64()/Float64() and friends, plus
//     StringOf/BoolOf/IntOf for named domain types and Transform for total
//     conversions.
//   - List(elem): arrays whose elements share one codec.
//   - Struct[T](name): records. Each field is declared with Required or
//     Optional and a selector returning the field address.
//   - Union[U](name): externally tagged unions. Each variant is a single-key
//     object whose key selects the variant; Payload variants carry a nested
//     value, Unit variants carry {}.
//
// Decoding is fail-fast. The first problem found, in declaration order, is
// returned as a single-entry wirecodec.Issues whose Path points at the
// offending location.
//
// Example
//
//	type Message struct {
//	    ID     string
//	    Intent wirecodec.Option[Intent]
//	}
//
//	var intentCodec = dsl.Union[Intent]("message_intent").
//	    Variant(
//	        dsl.Unit[Intent]("create", Create{}, dsl.Is[Intent, Create]()),
//	        dsl.Unit[Intent]("delete", Delete{}, dsl.Is[Intent, Delete]()),
//	    ).
//	    MustBuild()
//
//	var messageCodec = dsl.Struct[Message]("message").
//	    Field(
//	        dsl.Required("id", dsl.String(), func(m *Message) *string { return &m.ID }),
//	        dsl.Optional[Message, Intent]("intent", intentCodec, func(m *Message) *wirecodec.Option[Intent] { return &m.Intent }),
//	    ).
//	    MustBuild()
//
//	m, err := wirecodec.DecodeJSON[Message](messageCodec, []byte(`{"id":"m1","intent":{"create":{}}}`))
//
// Union tie-break
//
// When an input object carries keys of several variants, the variant declared
// first wins and the remaining keys are ignored. Unknown keys are ignored by
// both records and unions.
//
// JSON Schema
//
// Every codec built here implements jsonschema.Describer; jsonschema.Of
// projects records to object schemas and unions to anyOf lists of objects
// that each require one variant key.
package dsl
