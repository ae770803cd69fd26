package autometa

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"testing"

	"github.com/spriteframes/spriteframes/types"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Println

// onlyReader hides the Seek method of a bytes.Reader
type onlyReader struct{ io.Reader }

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewPaletted(image.Rect(0, 0, 3, 2), color.Palette{color.Transparent, color.Black})
	require.NoError(t, gif.Encode(&buf, img, nil))
	data := buf.Bytes()

	t.Run("recognizes GIF from a seekable stream", func(t *testing.T) {
		input := bytes.NewReader(data)
		md, stream, err := Load(input)
		require.NoError(t, err)
		require.Equal(t, types.GIF, md.Format)
		returnedBytes, err := io.ReadAll(stream)
		require.NoError(t, err)
		require.Equal(t, data, returnedBytes)
	})

	t.Run("recognizes GIF from a plain reader", func(t *testing.T) {
		md, stream, err := Load(onlyReader{bytes.NewReader(data)})
		require.NoError(t, err)
		require.Equal(t, uint32(3), md.PixelWidth)
		returnedBytes, err := io.ReadAll(stream)
		require.NoError(t, err)
		require.Equal(t, data, returnedBytes)
	})

	t.Run("returns original image data when format is unrecognised", func(t *testing.T) {
		data := []byte("not an image format simply some plain text")
		md, stream, err := Load(onlyReader{bytes.NewReader(data)})
		require.ErrorIs(t, err, ErrUnrecognised)
		require.Nil(t, md)
		returnedBytes, err := io.ReadAll(stream)
		require.NoError(t, err)
		require.Equal(t, data, returnedBytes)
	})

	t.Run("reports why a recognised header could not be read", func(t *testing.T) {
		data := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00")
		md, stream, err := Load(onlyReader{bytes.NewReader(data)})
		require.Nil(t, md)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUnrecognised)
		require.ErrorContains(t, err, "truncated PNG chunk header")
		returnedBytes, err := io.ReadAll(stream)
		require.NoError(t, err)
		require.Equal(t, data, returnedBytes)
	})
}
