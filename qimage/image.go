package qimage

import (
	"image"
	"image/color"
)

// Image is a dense RGB pixel buffer. It implements image.Image and adds
// typed accessors that avoid per-pixel color interface conversions. Once
// built it is safe for concurrent reads.
type Image struct {
	data          []Color
	width, height int
}

func (i *Image) ColorModel() color.Model {
	return &TheColorModel{}
}

// In returns whether the point is within the image.
func (i *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < i.width && y < i.height
}

func (i *Image) k(p image.Point) int {
	return i.kxy(p.X, p.Y)
}

func (i *Image) kxy(x, y int) int {
	return (y * i.width) + x
}

func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.width, i.height)
}

func (i *Image) Width() int {
	return i.width
}

func (i *Image) Height() int {
	return i.height
}

func (i *Image) At(x, y int) color.Color {
	return i.data[i.kxy(x, y)]
}

func (i *Image) Get(p image.Point) Color {
	return i.data[i.k(p)]
}

func (i *Image) GetXY(x, y int) Color {
	return i.data[i.kxy(x, y)]
}

func (i *Image) SetXY(x, y int, c Color) {
	i.data[i.kxy(x, y)] = c
}

func (i *Image) Set(p image.Point, c Color) {
	i.data[i.k(p)] = c
}

// WriteTo encodes the image to the given file, format chosen by extension.
func (i *Image) WriteTo(fn string) error {
	return WriteImageToFile(fn, i)
}

// Clone returns a deep copy.
func (i *Image) Clone() *Image {
	out := NewImage(i.width, i.height)
	copy(out.data, i.data)
	return out
}

// NewImage returns an all-black image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		data:   make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// ConvertImage copies any image.Image into an Image. If img already is
// one, it is returned as is.
func ConvertImage(img image.Image) *Image {
	if ii, ok := img.(*Image); ok {
		return ii
	}
	bounds := img.Bounds()
	out := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.setColor(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return out
}

func (i *Image) setColor(x, y int, c color.Color) {
	i.data[i.kxy(x, y)] = NewColorFromColor(c)
}
