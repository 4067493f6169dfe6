package nodetree

import "io"

// Decoder materializes a value of type T from the node described by h,
// found somewhere in the full stream r (not just h's own payload — r must
// support seeking to h.PayloadStart() regardless of where the cursor
// currently sits).
type Decoder[T any] func(r io.ReadSeeker, h Header) (T, error)

// LazyData captures a node's header without reading its payload, so the
// contents can be materialized on demand later (typically from a
// background loader thread, once the value is actually needed).
//
// It mirrors the original format's two-state value: a [LazyData] either
// wraps a cached [Header] ready to be read, or a value ready to be
// written. Mixing the two up (writing a read-only LazyData, or reading an
// unwritten one) is a programmer error.
type LazyData[T any] struct {
	header   Header
	hasValue bool
	value    T
}

// LazyRead builds a [LazyData] that defers reading until [LazyData.Materialize]
// is called.
func LazyRead[T any](h Header) LazyData[T] {
	return LazyData[T]{header: h}
}

// LazyWrite builds a [LazyData] around a value ready to be encoded by
// [LazyData.WriteNode].
func LazyWrite[T any](v T) LazyData[T] {
	return LazyData[T]{hasValue: true, value: v}
}

// Materialize re-reads the node's payload from src using decode. src must
// provide access to the same stream the header's position was captured
// against.
func (l LazyData[T]) Materialize(src io.ReadSeeker, decode Decoder[T]) (T, error) {
	if l.hasValue {
		var zero T

		return zero, ErrNotCached
	}

	return decode(src, l.header)
}

// Header returns the cached header and true, or the zero Header and false
// if this LazyData was built for writing.
func (l LazyData[T]) Header() (Header, bool) {
	return l.header, !l.hasValue
}

// Value returns the wrapped value and true if this LazyData was built via
// [LazyWrite].
func (l LazyData[T]) Value() (T, bool) {
	return l.value, l.hasValue
}

// WriteNode encodes the wrapped value as a child node of w using encode.
// Panics if this LazyData was built via [LazyRead] — per spec, writing an
// unmaterialized lazy value is a programmer error, not a recoverable one.
func (l LazyData[T]) WriteNode(w *Writer, tag Tag, encode func(*Writer, T) error) error {
	if !l.hasValue {
		panic("nodetree: cannot write a LazyData built for reading")
	}

	return w.BuildNode(tag, func(child *Writer) error {
		return encode(child, l.value)
	})
}
