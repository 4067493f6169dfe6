// Package assetfs provides filesystem abstractions for reading and writing
// packaged asset files.
//
// The main types are:
//   - [FS]: interface for filesystem operations
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] package
//
// nodetree depends on [FS] rather than [os] directly so asset I/O can be
// swapped out in tests without touching the real filesystem.
//
// The interface is kept to exactly the operations nodetree drives: opening
// and stat'ing a file for mapped reads, and atomically writing one out.
// Add a method here only once something actually calls it.
//
// Example usage:
//
//	fsys := assetfs.NewReal()
//	f, err := fsys.Open("level.lvl")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
package assetfs

import (
	"io"
	"os"
)

// File represents an OS-backed open file descriptor, read-only from this
// package's point of view.
//
// The intent is os-like behavior: implementations must behave like
// [os.File], including that [File.Fd] returns a valid OS file descriptor
// usable with syscalls (for example [unix.Mmap]) until the file is closed.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type File interface {
	io.ReadCloser
	io.Seeker

	// Fd returns the file descriptor. See [os.File.Fd].
	// Used for low-level operations like mmap.
	Fd() uintptr

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines filesystem operations for reading and writing packaged-asset
// files.
//
// Implementations in this package include:
//   - [Real]: production use, wraps [os] package
//
// Paths use OS semantics (like the os package and path/filepath), not the
// slash-separated paths used by the standard library io/fs package.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	// The returned [File] can be used with [bufio], [io], and other stdlib packages.
	Open(path string) (File, error)

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// WriteFileAtomic writes data to a file atomically: it's either written
	// in full or not at all, even if the process is killed mid-write. Uses a
	// temp file plus rename under the hood. Readers of path never observe a
	// partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
