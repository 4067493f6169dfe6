package nodetree

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer emits a single node to an [io.WriteSeeker]: an 8-byte tag+size
// header, immediately followed by whatever payload bytes are written
// through it. The size field is a placeholder until [Writer.Finish] seeks
// back and backpatches it with the number of payload bytes actually
// written — the caller never computes it by hand.
//
// A Writer is single-use: call [Writer.Finish] exactly once, directly or
// via [Writer.BuildNode], after which further writes are invalid.
type Writer struct {
	sink      io.WriteSeeker
	dataStart int64 // absolute offset of the first payload byte
	finished  bool
}

// NewWriter emits tag's header at the sink's current position (with a
// zero placeholder size) and returns a [Writer] positioned to accept the
// node's payload.
func NewWriter(sink io.WriteSeeker, tag Tag) (*Writer, error) {
	pos, err := sink.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w: seek to header: %w", ErrIO, err)
	}

	var buf [headerSize]byte

	copy(buf[0:4], tag[:])
	// buf[4:8] left zero; backpatched in Finish.

	_, err = sink.Write(buf[:])
	if err != nil {
		return nil, fmt.Errorf("%w: write header: %w", ErrIO, err)
	}

	return &Writer{sink: sink, dataStart: pos + headerSize}, nil
}

// Write appends raw payload bytes.
func (w *Writer) Write(p []byte) (int, error) {
	if w.finished {
		return 0, fmt.Errorf("%w: write after Finish", ErrInvariantViolation)
	}

	n, err := w.sink.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w: write payload: %w", ErrIO, err)
	}

	return n, nil
}

// WritePacked writes v as a little-endian binary value via
// [binary.Write], the usual way to pack fixed-size struct payloads.
func (w *Writer) WritePacked(v any) error {
	return binary.Write(w, binary.LittleEndian, v)
}

// BuildNode writes a complete child node: a sub-[Writer] for tag is
// opened, f populates its payload, and the child is finished before
// BuildNode returns — regardless of whether f succeeds. This is the
// idiomatic stand-in for the source format's scope-exit backpatch: f's
// error, if any, takes priority over a later Finish failure.
func (w *Writer) BuildNode(tag Tag, f func(*Writer) error) (err error) {
	child, err := NewWriter(w.sink, tag)
	if err != nil {
		return err
	}

	defer func() {
		ferr := child.Finish()
		if err == nil {
			err = ferr
		}
	}()

	return f(child)
}

// WriteNode is a convenience wrapper for leaf nodes whose entire payload
// is a single byte slice.
func (w *Writer) WriteNode(tag Tag, payload []byte) error {
	return w.BuildNode(tag, func(child *Writer) error {
		_, err := child.Write(payload)

		return err
	})
}

// Finish backpatches the node's size field with the number of payload
// bytes written since [NewWriter], then seeks the sink past the node.
// Finish is idempotent: calling it more than once is a no-op.
func (w *Writer) Finish() error {
	if w.finished {
		return nil
	}

	w.finished = true

	dataEnd, err := w.sink.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: seek to data end: %w", ErrIO, err)
	}

	size := dataEnd - w.dataStart
	if size > math.MaxUint32 {
		return fmt.Errorf("%w: node at %d has payload of %d bytes", ErrNodeTooLarge, w.dataStart-headerSize, size)
	}

	var buf [4]byte

	binary.LittleEndian.PutUint32(buf[:], uint32(size))

	_, err = w.sink.Seek(w.dataStart-4, io.SeekStart)
	if err != nil {
		return fmt.Errorf("%w: seek to size field: %w", ErrIO, err)
	}

	_, err = w.sink.Write(buf[:])
	if err != nil {
		return fmt.Errorf("%w: backpatch size: %w", ErrIO, err)
	}

	_, err = w.sink.Seek(dataEnd, io.SeekStart)
	if err != nil {
		return fmt.Errorf("%w: seek past node: %w", ErrIO, err)
	}

	return nil
}
