//go:build !unix

package nodetree

import (
	"fmt"
	"io"
	"sync"

	"github.com/kestrelgame/enginecore/internal/assetfs"
)

// MappedFile falls back to ordinary seek-then-read on platforms without a
// unix mmap syscall. [assetfs.File] makes no io.ReaderAt guarantee, so
// random-access reads are serialized behind a mutex around Seek+Read
// instead.
type MappedFile struct {
	mu sync.Mutex
	f  assetfs.File
}

// OpenMapped opens path via fsys for random-access reads.
func OpenMapped(fsys assetfs.FS, path string) (*MappedFile, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}

	return &MappedFile{f: f}, nil
}

// ReadAt implements [io.ReaderAt] by serializing Seek+Read.
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.f.Seek(off, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: seek: %w", ErrIO, err)
	}

	return io.ReadFull(m.f, p)
}

// Close closes the underlying file.
func (m *MappedFile) Close() error {
	return m.f.Close()
}
