package spriteframes

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

// ToNRGBA converts img to 8-bit non-premultiplied RGBA with its origin at
// (0, 0), preserving transparency whatever the source color model. Images
// that are already in that form are returned as is.
func ToNRGBA(img image.Image) (*image.NRGBA, error) {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n, nil
	}
	width, height := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return dst, nil
	}
	var f func(start, limit int)
	switch src := img.(type) {
	case *image.Paletted:
		var lut [256]color.NRGBA
		for i, c := range src.Palette {
			if i >= len(lut) {
				break
			}
			lut[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := dst.Pix[y*dst.Stride : y*dst.Stride+4*width]
				pi := src.PixOffset(b.Min.X, b.Min.Y+y)
				for x, idx := range src.Pix[pi : pi+width] {
					c := lut[idx]
					s := row[4*x : 4*x+4 : 4*x+4]
					s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
				}
			}
		}
	default:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := dst.Pix[y*dst.Stride : y*dst.Stride+4*width]
				for x := range width {
					c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
					s := row[4*x : 4*x+4 : 4*x+4]
					s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
				}
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, height); err != nil {
		return nil, err
	}
	return dst, nil
}
