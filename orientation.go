package spriteframes

import (
	"image"

	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
)

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified orientation = 0
	orientationNormal      orientation = 1
	orientationFlipH       orientation = 2
	orientationRotate180   orientation = 3
	orientationFlipV       orientation = 4
	orientationTranspose   orientation = 5
	orientationRotate270   orientation = 6
	orientationTransverse  orientation = 7
	orientationRotate90    orientation = 8
)

func (o orientation) swaps_axes() bool {
	return o >= orientationTranspose && o <= orientationRotate90
}

// destination maps the source pixel (x, y) of a w×h image to its position
// in the correctly oriented image.
func (o orientation) destination(x, y, w, h int) (int, int) {
	switch o {
	case orientationFlipH:
		return w - 1 - x, y
	case orientationRotate180:
		return w - 1 - x, h - 1 - y
	case orientationFlipV:
		return x, h - 1 - y
	case orientationTranspose:
		return y, x
	case orientationRotate270: // 90 degrees clockwise
		return h - 1 - y, x
	case orientationTransverse:
		return h - 1 - y, w - 1 - x
	case orientationRotate90: // 90 degrees counter-clockwise
		return y, w - 1 - x
	}
	return x, y
}

// fixOrientation applies a transform to img corresponding to the given orientation flag.
func fixOrientation(img image.Image, o orientation) (image.Image, error) {
	if o == orientationUnspecified || o == orientationNormal {
		return img, nil
	}
	src, err := ToNRGBA(img)
	if err != nil {
		return nil, err
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dw, dh := w, h
	if o.swaps_axes() {
		dw, dh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := range h {
		for x := range w {
			dx, dy := o.destination(x, y, w, h)
			si, di := y*src.Stride+4*x, dy*dst.Stride+4*dx
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst, nil
}

func read_orientation(e *exif.Exif) orientation {
	if e == nil {
		return orientationUnspecified
	}
	orient, err := e.Get(exif.Orientation)
	if err == nil && orient != nil && orient.Format() == exif_tiff.IntVal {
		if x, err := orient.Int(0); err == nil && x > 0 && x < 9 {
			return orientation(x)
		}
	}
	return orientationUnspecified
}

// fix_orientation rotates or flips the frames of a still image as its EXIF
// data requests. Files without usable EXIF data are left untouched.
func fix_orientation(ans *Animation) (err error) {
	md := ans.Metadata
	exif_data, err := md.Exif()
	if err != nil {
		return nil
	}
	oval := read_orientation(exif_data)
	if oval == orientationUnspecified || oval == orientationNormal {
		return nil
	}
	for _, f := range ans.Frames {
		if f.Image, err = fixOrientation(f.Image, oval); err != nil {
			return err
		}
	}
	if oval.swaps_axes() {
		md.PixelWidth, md.PixelHeight = md.PixelHeight, md.PixelWidth
	}
	return nil
}
