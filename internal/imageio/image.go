// Package imageio implements the image surface consumed and produced
// by the rendering core, plus PNG encode/decode. This is the "image
// I/O" external collaborator named in the rendering spec: the core
// only depends on pixel get/set access, not on this package's file
// format choices.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Image is a width x height grid of 24-bit RGB pixels, stored
// row-major (row j, column i) matching the renderer's (i, j) pixel
// addressing: pixel (i, j) lives at image row j, column i.
type Image struct {
	Width, Height int
	Pixels        []byte // len == Width*Height*3, row-major RGB8
}

// NewImage allocates a black width x height image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*3),
	}
}

func (img *Image) offset(i, j int) int {
	return (j*img.Width + i) * 3
}

// SetPixel writes an RGB8 triple at column i, row j.
func (img *Image) SetPixel(i, j int, r, g, b byte) {
	o := img.offset(i, j)
	img.Pixels[o] = r
	img.Pixels[o+1] = g
	img.Pixels[o+2] = b
}

// GetPixel reads the RGB8 triple at column i, row j.
func (img *Image) GetPixel(i, j int) (r, g, b byte) {
	o := img.offset(i, j)
	return img.Pixels[o], img.Pixels[o+1], img.Pixels[o+2]
}

// The following methods implement image.Image so an *Image can be
// passed directly to image/png.Encode.

func (img *Image) ColorModel() color.Model { return color.RGBAModel }

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

func (img *Image) At(x, y int) color.Color {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return color.RGBA{}
	}
	r, g, b := img.GetPixel(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// EncodePNG writes img to w in PNG format.
func EncodePNG(w io.Writer, img *Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imageio: encode png: %w", err)
	}
	return nil
}

// DecodePNG reads a PNG image from r into an *Image, dropping alpha.
func DecodePNG(r io.Reader) (*Image, error) {
	src, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode png: %w", err)
	}
	bounds := src.Bounds()
	out := NewImage(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, _ := src.At(x, y).RGBA()
			out.SetPixel(x-bounds.Min.X, y-bounds.Min.Y, byte(r16>>8), byte(g16>>8), byte(b16>>8))
		}
	}
	return out, nil
}
