package wirecodec

// Codec converts between Value and a domain type T.
//
// Encode is total. Decode either returns a T or the first Issue encountered,
// with the failing location rendered from p.
type Codec[T any] interface {
	Encode(v T) Value
	Decode(v Value, p Path) (T, error)
}

// Option is the absence sentinel for optional fields. The zero Option is absent.
type Option[T any] struct {
	v  T
	ok bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{v: v, ok: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.v, o.ok }

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.ok }

// OrZero returns the held value or the zero T when absent.
func (o Option[T]) OrZero() T { return o.v }

// DecodeValue runs c from the root path.
func DecodeValue[T any](c Codec[T], v Value) (T, error) {
	return c.Decode(v, Root())
}
