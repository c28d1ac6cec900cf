package storage

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Thumbnail decodes srcRel and writes a copy fitted inside the thumbnail bounds to dstRel.
// The aspect ratio is kept and smaller images are not enlarged.
func (l *Local) Thumbnail(ctx context.Context, srcRel, dstRel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	src, err := l.resolve(srcRel)
	if err != nil {
		return err
	}
	dst, err := l.resolve(dstRel)
	if err != nil {
		return err
	}
	format, err := imaging.FormatFromFilename(dst)
	if err != nil {
		return fmt.Errorf("unsupported thumbnail format for %s: %w", dstRel, err)
	}

	if err := l.checkPixels(src, srcRel); err != nil {
		return err
	}
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", srcRel, err)
	}
	thumb := imaging.Fit(img, l.thumbWidth, l.thumbHeight, imaging.Lanczos)

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".thumb-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := imaging.Encode(tmp, thumb, format); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to flush thumbnail: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to move thumbnail into place: %w", err)
	}
	return nil
}

// checkPixels reads only the image header and rejects sources larger than maxPixels.
func (l *Local) checkPixels(src, srcRel string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", srcRel, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", srcRel, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(l.maxPixels) {
		return fmt.Errorf("image %s is %dx%d, over the %d pixel limit", srcRel, cfg.Width, cfg.Height, l.maxPixels)
	}
	return nil
}
