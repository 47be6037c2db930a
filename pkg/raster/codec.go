package raster

import (
	"image"
	"os"
	"path/filepath"

	// Decoders available to Probe.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Codec reads source images and writes encoded atlases.
type Codec interface {
	// Probe decodes the image at path.
	Probe(path string) (image.Image, error)
	// Encode writes img to path as PNG, creating the directory if needed.
	Encode(img image.Image, path string, opts EncodeOptions) error
}

// FS is the filesystem-backed Codec.
type FS struct{}

var _ Codec = FS{}

// Probe opens and decodes the image at path.
// Failures carry ErrCodeProbeFailed with the original error as cause.
func (FS) Probe(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbeFailed, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeProbeFailed, err, "decode %s", path)
	}
	return img, nil
}

// Encode writes img to path.
//
// The directory is created first (ErrCodeMkdirFailed). The image is encoded
// into a temporary file beside path and renamed into place only once fully
// written, so a failed encode (ErrCodeEncodeFailed) never leaves a partial
// file at path.
func (FS) Encode(img image.Image, path string, opts EncodeOptions) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeMkdirFailed, err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "create %s", path)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := EncodePNG(tmp, img, opts); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "encode %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "write %s", path)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "chmod %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "rename %s", path)
	}
	return nil
}
