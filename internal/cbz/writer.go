// Package cbz writes CBZ chapter archives with all-or-nothing visibility:
// entries accumulate in a .tmp file that only becomes the final archive on
// Commit. Abort (or a failed Commit) leaves nothing behind.
package cbz

import (
	"archive/zip"
	"fmt"
	"os"
)

// TmpSuffix is appended to the final path while the archive is being written.
const TmpSuffix = ".tmp"

type Writer struct {
	f     *os.File
	zw    *zip.Writer
	tmp   string
	final string
	names map[string]bool
	done  bool
}

// Create opens a new archive destined for path. The bytes go to path+TmpSuffix
// until Commit renames them into place.
func Create(path string) (*Writer, error) {
	tmp := path + TmpSuffix

	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("cbz: %w", err)
	}

	return &Writer{
		f:     f,
		zw:    zip.NewWriter(f),
		tmp:   tmp,
		final: path,
		names: map[string]bool{},
	}, nil
}

// Add appends one deflate-compressed member. Member names must be unique.
func (w *Writer) Add(name string, data []byte) error {
	if w.done {
		return fmt.Errorf("cbz: archive %s already closed", w.final)
	}
	if w.names[name] {
		return fmt.Errorf("cbz: duplicate member %q", name)
	}
	w.names[name] = true

	member, err := w.zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	if _, err := member.Write(data); err != nil {
		return fmt.Errorf("cbz: %w", err)
	}

	return nil
}

// Commit finalizes the archive and atomically moves it to the final path.
func (w *Writer) Commit() error {
	if w.done {
		return fmt.Errorf("cbz: archive %s already closed", w.final)
	}
	w.done = true

	if err := w.zw.Close(); err != nil {
		w.discard()
		return fmt.Errorf("cbz: %w", err)
	}
	if err := w.f.Close(); err != nil {
		_ = os.Remove(w.tmp)
		return fmt.Errorf("cbz: %w", err)
	}

	if err := os.Rename(w.tmp, w.final); err != nil {
		_ = os.Remove(w.tmp)
		return fmt.Errorf("cbz: %w", err)
	}

	return nil
}

// Abort drops the partial archive. Safe to call after Commit, where it is a no-op.
func (w *Writer) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.discard()
}

func (w *Writer) discard() {
	_ = w.zw.Close()
	_ = w.f.Close()
	_ = os.Remove(w.tmp)
}
