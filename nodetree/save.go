package nodetree

import (
	"fmt"
	"io"

	"github.com/kestrelgame/enginecore/internal/assetfs"
)

// byteSink is an in-memory [io.WriteSeeker] over a growable buffer, used
// to assemble a whole packaged-asset file before committing it to disk in
// one atomic rename.
type byteSink struct {
	buf []byte
	pos int64
}

func (s *byteSink) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}

	n := copy(s.buf[s.pos:end], p)
	s.pos = end

	return n, nil
}

func (s *byteSink) Seek(offset int64, whence int) (int64, error) {
	var base int64

	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = s.pos
	case io.SeekEnd:
		base = int64(len(s.buf))
	default:
		return 0, fmt.Errorf("%w: invalid whence %d", ErrIO, whence)
	}

	next := base + offset
	if next < 0 {
		return 0, fmt.Errorf("%w: negative seek position", ErrIO)
	}

	s.pos = next

	return next, nil
}

// Save builds a complete packaged-asset file in memory, with rootTag as
// the root node, and commits it to path via [assetfs.FS.WriteFileAtomic] so
// readers never observe a partially-written file.
func Save(path string, rootTag Tag, build func(w *Writer) error) error {
	return SaveFS(assetfs.NewReal(), path, rootTag, build)
}

// SaveFS is [Save] parameterized over the filesystem, so callers can swap
// in a fake for tests without touching disk.
func SaveFS(fsys assetfs.FS, path string, rootTag Tag, build func(w *Writer) error) error {
	sink := &byteSink{}

	root, err := NewWriter(sink, rootTag)
	if err != nil {
		return err
	}

	buildErr := build(root)

	finishErr := root.Finish()
	if buildErr != nil {
		return buildErr
	}

	if finishErr != nil {
		return finishErr
	}

	return fsys.WriteFileAtomic(path, sink.buf, 0o644)
}
