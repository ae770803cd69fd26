// Package testutil builds small sprite fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// Palette used by generated GIFs. Index 0 is transparent.
var Palette = color.Palette{
	color.RGBA{},
	color.RGBA{R: 0xff, A: 0xff},
	color.RGBA{G: 0xff, A: 0xff},
	color.RGBA{B: 0xff, A: 0xff},
}

// Sprite describes a generated animated GIF. Every frame covers the whole
// logical screen, is transparent except for one marker pixel, and uses the
// same Delay (in hundredths of a second) unless Delays is set.
type Sprite struct {
	Width, Height int
	Frames        int
	Delay         int
	Delays        []int
	Disposal      byte
}

// Marker returns the position of the opaque pixel drawn in frame i.
func (s Sprite) Marker(i int) image.Point {
	return image.Pt(i%s.Width, (i/s.Width)%s.Height)
}

func (s Sprite) GIF() *gif.GIF {
	g := &gif.GIF{Config: image.Config{Width: s.Width, Height: s.Height, ColorModel: Palette}}
	for i := range s.Frames {
		img := image.NewPaletted(image.Rect(0, 0, s.Width, s.Height), Palette)
		p := s.Marker(i)
		img.SetColorIndex(p.X, p.Y, uint8(1+i%3))
		delay := s.Delay
		if i < len(s.Delays) {
			delay = s.Delays[i]
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, s.Disposal)
	}
	return g
}

// WriteGIF encodes g to path, creating parent directories.
func WriteGIF(t testing.TB, path string, g *gif.GIF) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gif.EncodeAll(f, g))
	return path
}

// WriteSprite is a shortcut for WriteGIF(t, path, s.GIF()).
func WriteSprite(t testing.TB, path string, s Sprite) string {
	t.Helper()
	return WriteGIF(t, path, s.GIF())
}

// WriteFile writes raw bytes to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// HalvesImage is a w×h opaque image whose left half is red and right half
// is blue.
func HalvesImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{R: 0xff, A: 0xff}
			if x >= w/2 {
				c = color.NRGBA{B: 0xff, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// exif_segment is a JPEG APP1 segment holding a big endian TIFF block whose
// only IFD entry is the Orientation tag.
func exif_segment(orientation uint16) []byte {
	tiff := []byte{'M', 'M', 0, 42, 0, 0, 0, 8, 0, 1}
	entry := make([]byte, 12)
	binary.BigEndian.PutUint16(entry[0:], 0x0112) // Orientation
	binary.BigEndian.PutUint16(entry[2:], 3)      // SHORT
	binary.BigEndian.PutUint32(entry[4:], 1)
	binary.BigEndian.PutUint16(entry[8:], orientation)
	tiff = append(tiff, entry...)
	tiff = append(tiff, 0, 0, 0, 0)
	payload := append([]byte("Exif\x00\x00"), tiff...)
	header := []byte{0xff, 0xe1, 0, 0}
	binary.BigEndian.PutUint16(header[2:], uint16(len(payload)+2))
	return append(header, payload...)
}

// JPEGWithOrientation encodes img as a JPEG carrying an EXIF Orientation tag.
func JPEGWithOrientation(t testing.TB, img image.Image, orientation uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}))
	data := buf.Bytes()
	return slices.Concat(data[:2], exif_segment(orientation), data[2:])
}
