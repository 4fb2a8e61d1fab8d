package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
)

// Save encodes img to path in the format implied by the file extension.
//
// The image is written to a temporary file in the destination directory and
// renamed into place, so a failed save never leaves a partial file behind.
// The destination directory must exist.
func Save(img image.Image, path string) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("failed to pick output format: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".neon-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if err := imaging.Encode(tmp, img, format); err != nil {
		return multierr.Append(fmt.Errorf("failed to encode image: %w", err), tmp.Close())
	}
	if err := tmp.Chmod(0o644); err != nil {
		return multierr.Append(fmt.Errorf("failed to set output permissions: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}
