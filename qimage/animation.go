package qimage

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/setanarut/apng"
	"go.uber.org/multierr"
)

// WriteAnimationToFile writes frames as an animated image in the order
// given, looping forever with the same delay on every frame. The file
// extension picks the container, .gif or .png/.apng.
func WriteAnimationToFile(path string, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return errors.New("no frames to write")
	}
	// both containers count delay in 1/100s
	delayCS := int(delay / (10 * time.Millisecond))
	if delayCS < 1 {
		delayCS = 1
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".gif":
		return writeGIF(path, frames, delayCS)
	case ".png", ".apng":
		return apng.Save(path, frames, delayCS)
	default:
		return errors.Errorf("qimage.WriteAnimationToFile unsupported format: %q", ext)
	}
}

func writeGIF(path string, frames []image.Image, delayCS int) (err error) {
	out := gif.GIF{}
	for _, frame := range frames {
		out.Image = append(out.Image, convertImageToPaletted(frame))
		out.Delay = append(out.Delay, delayCS)
	}

	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return gif.EncodeAll(f, &out)
}

// convertImageToPaletted quantizes a frame for GIF encoding. Frames with
// at most 256 distinct colors keep them exactly; busier frames fall back
// to the Plan9 palette with dithering.
func convertImageToPaletted(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}

	if plt, ok := exactPalette(img); ok {
		res := image.NewPaletted(img.Bounds(), plt)
		draw.Draw(res, img.Bounds(), img, img.Bounds().Min, draw.Src)
		return res
	}

	opts := gif.Options{
		NumColors: 256,
		Drawer:    draw.FloydSteinberg,
	}
	res := image.NewPaletted(img.Bounds(), palette.Plan9[:opts.NumColors])
	opts.Drawer.Draw(res, img.Bounds(), img, image.Point{})
	return res
}

// exactPalette collects the frame's distinct colors in scan order, giving
// up once there are more than 256.
func exactPalette(img image.Image) (color.Palette, bool) {
	bounds := img.Bounds()
	seen := map[Color]struct{}{}
	var plt color.Palette
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := NewColorFromColor(img.At(x, y))
			if _, ok := seen[c]; ok {
				continue
			}
			if len(plt) == 256 {
				return nil, false
			}
			seen[c] = struct{}{}
			plt = append(plt, c)
		}
	}
	return plt, true
}
