// Package storage keeps uploaded images on the local filesystem under one static root.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog_backend/internal/shared/apperr"
)

// copyBufferSize is the fixed chunk size used to stream uploads to disk.
const copyBufferSize = 32 << 10

// Default thumbnail bounds in pixels.
const (
	DefaultThumbWidth  = 300
	DefaultThumbHeight = 300
)

// DefaultMaxPixels caps the decoded size of a thumbnail source.
const DefaultMaxPixels = 40_000_000

// Local stores files below root. Every path handed to it is relative to root.
type Local struct {
	root        string
	thumbWidth  int
	thumbHeight int
	maxPixels   int
}

// Option customises a Local store.
type Option func(*Local)

// WithThumbnailSize overrides the bounding box of derived thumbnails.
func WithThumbnailSize(width, height int) Option {
	return func(l *Local) {
		l.thumbWidth = width
		l.thumbHeight = height
	}
}

// WithMaxPixels overrides the largest width*height a thumbnail source may declare.
func WithMaxPixels(n int) Option {
	return func(l *Local) { l.maxPixels = n }
}

// NewLocal creates the root directory if needed.
func NewLocal(root string, opts ...Option) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	l := &Local{root: root, thumbWidth: DefaultThumbWidth, thumbHeight: DefaultThumbHeight, maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Root returns the directory served as /static.
func (l *Local) Root() string { return l.root }

// Write streams r into relPath through a temp file in the same directory, then renames it.
// Failures reading r are client errors; failures writing are storage errors.
func (l *Local) Write(ctx context.Context, relPath string, r io.Reader) error {
	dst, err := l.resolve(relPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v: %w", dir, err, apperr.ErrStorage)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v: %w", err, apperr.ErrStorage)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	src := &trackingReader{ctx: ctx, r: r}
	buf := make([]byte, copyBufferSize)
	// io.Writer wrapper hides *os.File's ReaderFrom so the fixed buffer is used.
	if _, err := io.CopyBuffer(struct{ io.Writer }{tmp}, src, buf); err != nil {
		if src.err != nil {
			return fmt.Errorf("failed to read upload: %w: %w", src.err, apperr.ErrValidation)
		}
		return fmt.Errorf("failed to write %s: %v: %w", relPath, err, apperr.ErrStorage)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %v: %w", relPath, err, apperr.ErrStorage)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		committed = true
		return fmt.Errorf("failed to move %s into place: %v: %w", relPath, err, apperr.ErrStorage)
	}
	committed = true
	return nil
}

// Remove deletes relPath. A file that is already gone is not an error.
func (l *Local) Remove(relPath string) error {
	p, err := l.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve maps a slash-separated relative path onto the filesystem, refusing paths that leave root.
func (l *Local) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if relPath == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage path %q: %w", relPath, apperr.ErrValidation)
	}
	return filepath.Join(l.root, clean), nil
}

// trackingReader records the first non-EOF read error and stops once ctx is done.
type trackingReader struct {
	ctx context.Context
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	if err := t.ctx.Err(); err != nil {
		t.err = err
		return 0, err
	}
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}
