package qimage

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestImageBasics(t *testing.T) {
	img := NewImage(4, 2)
	test.That(t, img.Width(), test.ShouldEqual, 4)
	test.That(t, img.Height(), test.ShouldEqual, 2)
	test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 2))
	test.That(t, img.GetXY(0, 0), test.ShouldResemble, Black)

	img.SetXY(3, 1, Red)
	test.That(t, img.GetXY(3, 1), test.ShouldResemble, Red)
	test.That(t, img.Get(image.Point{X: 3, Y: 1}), test.ShouldResemble, Red)

	img.Set(image.Point{X: 0, Y: 1}, Blue)
	test.That(t, img.GetXY(0, 1), test.ShouldResemble, Blue)

	test.That(t, img.In(3, 1), test.ShouldBeTrue)
	test.That(t, img.In(0, 0), test.ShouldBeTrue)
	test.That(t, img.In(4, 0), test.ShouldBeFalse)
	test.That(t, img.In(0, 2), test.ShouldBeFalse)
	test.That(t, img.In(-1, 0), test.ShouldBeFalse)

	r, g, b, a := img.At(3, 1).RGBA()
	er, eg, eb, ea := color.RGBA{R: 255, A: 255}.RGBA()
	test.That(t, r, test.ShouldEqual, er)
	test.That(t, g, test.ShouldEqual, eg)
	test.That(t, b, test.ShouldEqual, eb)
	test.That(t, a, test.ShouldEqual, ea)
}

func TestConvertImage(t *testing.T) {
	t.Run("std image", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 4, 8))
		src.Set(3, 3, color.NRGBA{R: 255, A: 255})

		img := ConvertImage(src)
		test.That(t, img.Width(), test.ShouldEqual, 4)
		test.That(t, img.Height(), test.ShouldEqual, 8)
		test.That(t, img.GetXY(3, 3), test.ShouldResemble, Red)
		test.That(t, img.GetXY(0, 0), test.ShouldResemble, Black)
	})

	t.Run("already converted", func(t *testing.T) {
		img := NewImage(2, 2)
		test.That(t, ConvertImage(img), test.ShouldEqual, img)
	})

	t.Run("nonzero origin", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(2, 3, 6, 7))
		src.Set(2, 3, color.RGBA{G: 255, A: 255})

		img := ConvertImage(src)
		test.That(t, img.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 4))
		test.That(t, img.GetXY(0, 0), test.ShouldResemble, Green)
	})
}

func TestImageClone(t *testing.T) {
	img := NewImage(3, 3)
	img.SetXY(1, 1, Red)

	clone := img.Clone()
	test.That(t, clone, test.ShouldResemble, img)

	clone.SetXY(1, 1, Blue)
	test.That(t, img.GetXY(1, 1), test.ShouldResemble, Red)
	test.That(t, clone.GetXY(1, 1), test.ShouldResemble, Blue)
}
