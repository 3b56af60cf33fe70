package io

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/matzehuels/ilotplan/pkg/errors"
	"github.com/matzehuels/ilotplan/pkg/zone"
)

// ReadImage decodes an image from r into an RGB pixel buffer.
func ReadImage(r io.Reader) (zone.PixelBuffer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return zone.PixelBuffer{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode image")
	}
	b := img.Bounds()
	if b.Empty() {
		return zone.PixelBuffer{}, errors.New(errors.ErrCodeInvalidInput, "empty %s image", format)
	}
	return toBuffer(img), nil
}

// ImportImage reads and decodes the image at path.
func ImportImage(path string) (zone.PixelBuffer, error) {
	f, err := open(path)
	if err != nil {
		return zone.PixelBuffer{}, err
	}
	defer f.Close()
	buf, err := ReadImage(f)
	if err != nil {
		return zone.PixelBuffer{}, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// toBuffer flattens img to 8-bit RGB, compositing translucent pixels onto
// white.
func toBuffer(img image.Image) zone.PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, 0, w*h*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			pix = append(pix, over(r, a), over(g, a), over(bl, a))
		}
	}
	return zone.PixelBuffer{Width: w, Height: h, Channels: 3, Pix: pix}
}

// over composites a premultiplied 16-bit channel onto white.
func over(c, a uint32) byte {
	return byte((c + (0xffff - a)) >> 8)
}
