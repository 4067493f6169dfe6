// Package configfmt decodes and encodes the config sub-format found
// inside some packaged-asset payloads: interleaved DATA and SCOP nodes,
// each named by a preceding NAME node carrying a u32 hash rather than an
// ASCII string.
//
// The format's string-offset arithmetic carries an undocumented fudge
// factor (every stored offset is nine less than the position it actually
// points to). That quirk is preserved verbatim here rather than
// "corrected" — see [stringOffsetFudge].
package configfmt

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/kestrelgame/enginecore/nodetree"
)

// stringOffsetFudge is subtracted from a string's real tail offset before
// it's stored, and added back when resolving a stored value back to a
// tail offset. Its origin is unknown; every known encoder/decoder pair
// agrees on it, so round-tripping requires reproducing it exactly.
const stringOffsetFudge = 9

var (
	dataTag = nodetree.TagFromString("DATA")
	scopTag = nodetree.TagFromString("SCOP")
	nameTag = nodetree.TagFromString("NAME")
)

// Value is one raw 32-bit slot inside a DATA node's value array. Its
// interpretation (float or string-tail-offset) is not self-describing —
// the caller must know which based on the field's name hash, exactly as
// in the source format.
type Value uint32

// Float32 reinterprets the value's bits as an IEEE-754 float.
func (v Value) Float32() float32 {
	return math.Float32frombits(uint32(v))
}

// ValueFromFloat32 packs f for storage as a DATA value.
func ValueFromFloat32(f float32) Value {
	return Value(math.Float32bits(f))
}

// TailOffset resolves a string-typed value back to a byte offset into the
// DATA node's tail, undoing [stringOffsetFudge].
func (v Value) TailOffset() int {
	return int(int32(v)) + stringOffsetFudge
}

// ValueFromTailOffset packs a tail byte offset for storage, applying
// [stringOffsetFudge].
func ValueFromTailOffset(offset int) Value {
	return Value(offset - stringOffsetFudge)
}

// DataNode is a decoded DATA node: a name hash, a flat array of untyped
// values, and a tail of raw bytes that string-typed values index into.
type DataNode struct {
	NameHash uint32
	Values   []Value
	Tail     []byte
}

// TailString reads a NUL-terminated string out of the tail starting at
// the byte offset v.TailOffset() resolves to.
func (d DataNode) TailString(v Value) (string, error) {
	start := v.TailOffset()
	if start < 0 || start > len(d.Tail) {
		return "", fmt.Errorf("%w: tail offset %d out of range (tail length %d)",
			nodetree.ErrTruncatedPayload, start, len(d.Tail))
	}

	end := start
	for end < len(d.Tail) && d.Tail[end] != 0 {
		end++
	}

	return string(d.Tail[start:end]), nil
}

// DecodeDataNode parses a DATA node's payload bytes per the fixed layout:
// name hash, value count, values, tail length, tail.
func DecodeDataNode(payload []byte) (DataNode, error) {
	if len(payload) < 5 {
		return DataNode{}, fmt.Errorf("%w: DATA payload too short for header", nodetree.ErrTruncatedPayload)
	}

	nameHash := binary.LittleEndian.Uint32(payload[0:4])
	valueCount := int(payload[4])

	cursor := 5

	valuesEnd := cursor + valueCount*4
	if valuesEnd+4 > len(payload) {
		return DataNode{}, fmt.Errorf("%w: DATA payload too short for %d values", nodetree.ErrTruncatedPayload, valueCount)
	}

	values := make([]Value, valueCount)
	for i := 0; i < valueCount; i++ {
		values[i] = Value(binary.LittleEndian.Uint32(payload[cursor : cursor+4]))
		cursor += 4
	}

	tailLength := binary.LittleEndian.Uint32(payload[cursor : cursor+4])
	cursor += 4

	if cursor+int(tailLength) > len(payload) {
		return DataNode{}, fmt.Errorf("%w: DATA payload declares tail of %d bytes, only %d remain",
			nodetree.ErrTruncatedPayload, tailLength, len(payload)-cursor)
	}

	tail := payload[cursor : cursor+int(tailLength)]

	return DataNode{NameHash: nameHash, Values: values, Tail: tail}, nil
}

// EncodeDataNode serializes d into the exact byte layout [DecodeDataNode]
// expects.
func EncodeDataNode(d DataNode) ([]byte, error) {
	if len(d.Values) > math.MaxUint8 {
		return nil, fmt.Errorf("%w: DATA node has %d values, max is %d", nodetree.ErrInvariantViolation, len(d.Values), math.MaxUint8)
	}

	out := make([]byte, 0, 5+len(d.Values)*4+4+len(d.Tail))

	var head [5]byte

	binary.LittleEndian.PutUint32(head[0:4], d.NameHash)
	head[4] = byte(len(d.Values))
	out = append(out, head[:]...)

	for _, v := range d.Values {
		var buf [4]byte

		binary.LittleEndian.PutUint32(buf[:], uint32(v))
		out = append(out, buf[:]...)
	}

	var tailLen [4]byte

	binary.LittleEndian.PutUint32(tailLen[:], uint32(len(d.Tail)))
	out = append(out, tailLen[:]...)
	out = append(out, d.Tail...)

	return out, nil
}

// WriteDataNode writes d as a DATA child node of w.
func WriteDataNode(w *nodetree.Writer, d DataNode) error {
	payload, err := EncodeDataNode(d)
	if err != nil {
		return err
	}

	return w.WriteNode(dataTag, payload)
}

// Scope is a decoded SCOP node: a name hash plus the DATA and nested SCOP
// entries found directly inside it, in document order.
type Scope struct {
	NameHash uint32
	Entries  []ScopeEntry
}

// ScopeEntry is exactly one of Data or Nested, never both — Go has no
// sum types, so the zero value of the unused field simply goes unused.
type ScopeEntry struct {
	Data   *DataNode
	Nested *Scope
}

// ReadNameHash reads a NAME node's 4-byte hash payload.
func ReadNameHash(payload []byte) (uint32, error) {
	if len(payload) != 4 {
		return 0, fmt.Errorf("%w: NAME payload must be 4 bytes, got %d", nodetree.ErrInvalidNode, len(payload))
	}

	return binary.LittleEndian.Uint32(payload), nil
}

// WriteNameHash writes a NAME child node carrying hash.
func WriteNameHash(w *nodetree.Writer, hash uint32) error {
	var buf [4]byte

	binary.LittleEndian.PutUint32(buf[:], hash)

	return w.WriteNode(nameTag, buf[:])
}
