package qimage

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.uber.org/multierr"
	viamutils "go.viam.com/utils"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ReadImageFromFile reads an image from the given file. Format is detected
// from the encoded data, except for qoi which is selected by extension.
func ReadImageFromFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	defer func() {
		viamutils.UncheckedError(f.Close())
	}()

	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		img, err := qoi.Decode(f)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't decode qoi image from %q", path)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't decode image from %q", path)
	}
	return img, nil
}

// WriteImageToFile writes the image to the given file, encoded based on
// the file extension.
func WriteImageToFile(path string, img image.Image) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, nil)
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tiff", ".tif":
		return tiff.Encode(f, img, nil)
	case ".ppm":
		return ppm.Encode(f, img)
	case ".qoi":
		return qoi.Encode(f, img)
	default:
		return errors.Errorf("qimage.WriteImageToFile unsupported format: %q", ext)
	}
}
