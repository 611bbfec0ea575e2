package image

import (
	"errors"
	"image"
	"image/color"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"golang.org/x/image/draw"
)

// DefaultSampleSize is the edge length images are reduced to before
// quantization.
const DefaultSampleSize = 128

// ErrNoPixels is returned for images with an empty bounds rectangle.
var ErrNoPixels = errors.New("image has no pixels")

// Downsample scales img to fit inside a size x size square, keeping its
// aspect ratio. Images already small enough are returned as NRGBA copies at
// their own size.
func Downsample(img image.Image, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size > 0 && (w > size || h > size) {
		if w >= h {
			h = max(1, h*size/w)
			w = size
		} else {
			w = max(1, w*size/h)
			h = size
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Pixels downsamples img and returns its pixels in row-major order.
func Pixels(img image.Image, size int) ([]cie.RGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoPixels
	}
	small := Downsample(img, size)
	b := small.Bounds()
	out := make([]cie.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, cie.FromColor(small.NRGBAAt(x, y)))
		}
	}
	return out, nil
}

// FromPixels builds an NRGBA image of the given width from a row-major pixel
// slice. It is the inverse of Pixels for images that were not resized.
func FromPixels(pixels []cie.RGBA, width int) *image.NRGBA {
	if width <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	height := (len(pixels) + width - 1) / width
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		img.SetNRGBA(i%width, i/width, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A8()})
	}
	return img
}
