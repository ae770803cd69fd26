package spriteframes

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestToNRGBA(t *testing.T) {
	t.Run("NRGBA at origin is returned as is", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		dst, err := ToNRGBA(src)
		require.NoError(t, err)
		require.Same(t, src, dst)
	})

	t.Run("paletted keeps transparency", func(t *testing.T) {
		p := color.Palette{color.RGBA{}, color.RGBA{R: 0xff, A: 0xff}, color.NRGBA{B: 0xff, A: 0x80}}
		src := image.NewPaletted(image.Rect(3, 5, 6, 7), p)
		src.SetColorIndex(3, 5, 1)
		src.SetColorIndex(5, 6, 2)
		dst, err := ToNRGBA(src)
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 3, 2), dst.Bounds())
		want := []uint8{
			0xff, 0, 0, 0xff, 0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0x80,
		}
		if diff := cmp.Diff(want, dst.Pix); diff != "" {
			t.Fatalf("unexpected pixels (-want +got):\n%s", diff)
		}
	})

	t.Run("premultiplied RGBA is unpremultiplied", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		src.SetRGBA(0, 0, color.RGBA{R: 0x40, A: 0x80})
		dst, err := ToNRGBA(src)
		require.NoError(t, err)
		c := dst.NRGBAAt(0, 0)
		require.Equal(t, uint8(0x80), c.A)
		require.InDelta(t, 0x80, int(c.R), 1)
	})

	t.Run("gray is opaque", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 2, 40))
		src.SetGray(1, 39, color.Gray{Y: 7})
		dst, err := ToNRGBA(src)
		require.NoError(t, err)
		require.Equal(t, color.NRGBA{R: 7, G: 7, B: 7, A: 0xff}, dst.NRGBAAt(1, 39))
		require.Equal(t, color.NRGBA{A: 0xff}, dst.NRGBAAt(0, 0))
	})

	t.Run("empty", func(t *testing.T) {
		dst, err := ToNRGBA(image.NewRGBA(image.Rectangle{}))
		require.NoError(t, err)
		require.True(t, dst.Bounds().Empty())
	})
}
