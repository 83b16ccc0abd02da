package qimage

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.viam.com/test"
)

func solidFrame(c Color) *Image {
	img := NewImage(4, 4)
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.SetXY(x, y, c)
		}
	}
	return img
}

func TestWriteAnimationToFile(t *testing.T) {
	dir := t.TempDir()
	frames := []image.Image{solidFrame(Red), solidFrame(Green), solidFrame(Blue)}

	t.Run("gif", func(t *testing.T) {
		fn := filepath.Join(dir, "anim.gif")
		test.That(t, WriteAnimationToFile(fn, frames, 250*time.Millisecond), test.ShouldBeNil)

		data, err := os.ReadFile(fn)
		test.That(t, err, test.ShouldBeNil)
		g, err := gif.DecodeAll(bytes.NewReader(data))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(g.Image), test.ShouldEqual, 3)
		test.That(t, g.Delay, test.ShouldResemble, []int{25, 25, 25})
		test.That(t, g.LoopCount, test.ShouldEqual, 0)
		test.That(t, NewColorFromColor(g.Image[0].At(1, 1)), test.ShouldResemble, Red)
		test.That(t, NewColorFromColor(g.Image[2].At(1, 1)), test.ShouldResemble, Blue)
	})

	t.Run("gif minimum delay", func(t *testing.T) {
		fn := filepath.Join(dir, "fast.gif")
		test.That(t, WriteAnimationToFile(fn, frames, time.Millisecond), test.ShouldBeNil)

		data, err := os.ReadFile(fn)
		test.That(t, err, test.ShouldBeNil)
		g, err := gif.DecodeAll(bytes.NewReader(data))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, g.Delay[0], test.ShouldEqual, 1)
	})

	t.Run("apng", func(t *testing.T) {
		fn := filepath.Join(dir, "anim.png")
		test.That(t, WriteAnimationToFile(fn, frames, 250*time.Millisecond), test.ShouldBeNil)

		// the default frame of an apng is readable as a plain png
		data, err := os.ReadFile(fn)
		test.That(t, err, test.ShouldBeNil)
		img, err := png.Decode(bytes.NewReader(data))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 4))
	})

	t.Run("no frames", func(t *testing.T) {
		err := WriteAnimationToFile(filepath.Join(dir, "empty.gif"), nil, time.Second)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "no frames")
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := WriteAnimationToFile(filepath.Join(dir, "anim.webm"), frames, time.Second)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "unsupported format")
	})
}

func TestConvertImageToPaletted(t *testing.T) {
	t.Run("exact palette", func(t *testing.T) {
		img := NewImage(4, 4)
		img.SetXY(0, 0, Red)
		img.SetXY(3, 3, Blue)

		p := convertImageToPaletted(img)
		test.That(t, len(p.Palette), test.ShouldEqual, 3)
		test.That(t, NewColorFromColor(p.At(0, 0)), test.ShouldResemble, Red)
		test.That(t, NewColorFromColor(p.At(1, 1)), test.ShouldResemble, Black)
		test.That(t, NewColorFromColor(p.At(3, 3)), test.ShouldResemble, Blue)
	})

	t.Run("busy frame falls back to plan9", func(t *testing.T) {
		img := NewImage(20, 20)
		for x := 0; x < 20; x++ {
			for y := 0; y < 20; y++ {
				img.SetXY(x, y, NewColor(uint8(x*12), uint8(y*12), uint8(x+y)))
			}
		}

		p := convertImageToPaletted(img)
		test.That(t, len(p.Palette), test.ShouldEqual, 256)
	})

	t.Run("paletted passthrough", func(t *testing.T) {
		src := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
		test.That(t, convertImageToPaletted(src), test.ShouldEqual, src)
	})
}
