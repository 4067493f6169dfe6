package nodetree

import (
	"encoding/binary"
	"io"
)

// ReadChildren attempts to interpret a node's payload as a sequence of
// child nodes.
//
// It probes two layouts, per spec:
//  1. a bare concatenation of children, possibly separated by zero-byte
//     padding;
//  2. a leading little-endian u32 child count, followed by the same
//     concatenation.
//
// A probe succeeds only if every child header fits within the declared
// payload and the payload is fully consumed once trailing zero padding is
// accounted for. If neither probe succeeds, [ErrNoHierarchy] is returned.
func ReadChildren(r io.ReadSeeker, h Header) ([]Header, error) {
	payload, err := ReadPayloadBytes(r, h)
	if err != nil {
		return nil, err
	}

	if children, ok := parseChildren(payload, h.PayloadStart(), false); ok {
		return children, nil
	}

	if children, ok := parseChildren(payload, h.PayloadStart(), true); ok {
		return children, nil
	}

	return nil, ErrNoHierarchy
}

// parseChildren scans buf (the raw payload bytes of a node starting at
// absolute stream offset payloadStart) for a sequence of child node
// headers. ok is false if buf does not parse cleanly under the requested
// layout (leaving no partial results behind).
func parseChildren(buf []byte, payloadStart int64, countPrefixed bool) (children []Header, ok bool) {
	cursor := 0
	remainingCount := -1 // -1 means "no count prefix, consume until EOF"

	if countPrefixed {
		if len(buf) < 4 {
			return nil, false
		}

		remainingCount = int(binary.LittleEndian.Uint32(buf[0:4]))
		cursor = 4
	}

	for {
		for cursor < len(buf) && buf[cursor] == 0 {
			cursor++
		}

		if cursor >= len(buf) {
			break
		}

		if remainingCount == 0 {
			// Non-zero trailing data after the declared count is exhausted.
			return nil, false
		}

		if cursor+headerSize > len(buf) {
			return nil, false
		}

		var tag Tag

		copy(tag[:], buf[cursor:cursor+4])

		size := binary.LittleEndian.Uint32(buf[cursor+4 : cursor+8])
		childPos := payloadStart + int64(cursor)
		cursor += headerSize

		if cursor+int(size) > len(buf) {
			return nil, false
		}

		children = append(children, Header{Position: childPos, Tag: tag, Size: size})
		cursor += int(size)

		if remainingCount > 0 {
			remainingCount--
		}
	}

	if remainingCount > 0 {
		// Count prefix promised more children than were actually present.
		return nil, false
	}

	return children, true
}
