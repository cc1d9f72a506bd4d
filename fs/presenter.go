// Package fs writes notes to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/writeup"
)

// Ensure Presenter implements writeup.ContentPresenter at compile time.
var _ writeup.ContentPresenter = (*Presenter)(nil)

// Presenter writes note content to baseDir joined with the note path, so
// content too long for a URI can be copied or moved into the vault.
type Presenter struct {
	baseDir string
}

// NewPresenter creates a Presenter writing beneath baseDir.
func NewPresenter(baseDir string) *Presenter {
	return &Presenter{baseDir: baseDir}
}

// PathFor returns the file a note is written to.
// Returns EINVALID if the note path escapes the base directory.
func (p *Presenter) PathFor(note *writeup.Note) (string, error) {
	rel := filepath.FromSlash(note.Path)
	if !filepath.IsLocal(rel) {
		return "", writeup.Errorf(writeup.EINVALID, "note path %q is not a relative local path", note.Path)
	}
	return filepath.Join(p.baseDir, rel), nil
}

// Present implements writeup.ContentPresenter. The file is replaced
// atomically: content is written to a temporary file in the same
// directory and renamed over the target.
func (p *Presenter) Present(ctx context.Context, note *writeup.Note) error {
	if note == nil {
		return writeup.Errorf(writeup.EINVALID, "note required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := p.PathFor(note)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".writeup-*.md")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(note.Content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
