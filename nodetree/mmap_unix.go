//go:build unix

package nodetree

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/kestrelgame/enginecore/internal/assetfs"
)

// MappedFile is a read-only memory-mapped packaged-asset file, used so
// large lazy payloads can be paged in on demand instead of read eagerly.
type MappedFile struct {
	data []byte
	f    assetfs.File
}

// OpenMapped opens path via fsys and maps its full contents read-only.
func OpenMapped(fsys assetfs.FS, path string) (*MappedFile, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	}

	if info.Size() == 0 {
		return &MappedFile{f: f}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()

		return nil, fmt.Errorf("%w: mmap %s: %w", ErrIO, path, err)
	}

	return &MappedFile{data: data, f: f}, nil
}

// ReadAt implements [io.ReaderAt] directly against the mapped pages.
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(m.data)) {
		return 0, fmt.Errorf("%w: ReadAt offset %d out of range", ErrIO, off)
	}

	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, fmt.Errorf("%w: short ReadAt at %d", ErrTruncatedPayload, off)
	}

	return n, nil
}

// Close unmaps the file and closes the underlying descriptor.
func (m *MappedFile) Close() error {
	var unmapErr error

	if m.data != nil {
		unmapErr = unix.Munmap(m.data)
	}

	closeErr := m.f.Close()
	if unmapErr != nil {
		return fmt.Errorf("%w: munmap: %w", ErrIO, unmapErr)
	}

	return closeErr
}
