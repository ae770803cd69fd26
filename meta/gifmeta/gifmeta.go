package gifmeta

import (
	"bytes"
	"fmt"
	"image/gif"
	"io"
	"time"

	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/types"
)

var _ = fmt.Print

var ErrNotGIF = fmt.Errorf("%w: not a GIF stream", meta.ErrFormatMismatch)

// ExtractMetadata reads the logical screen descriptor of a GIF stream.
func ExtractMetadata(r io.Reader) (md *meta.Data, err error) {
	sig := make([]byte, 6)
	if _, err = io.ReadFull(r, sig); err != nil || (string(sig) != "GIF87a" && string(sig) != "GIF89a") {
		return nil, ErrNotGIF
	}
	c, err := gif.DecodeConfig(io.MultiReader(bytes.NewReader(sig), r))
	if err != nil {
		return nil, err
	}
	md = &meta.Data{
		Format: types.GIF, PixelWidth: uint32(c.Width), PixelHeight: uint32(c.Height),
		HasFrames: true,
	}
	return md, nil
}

// FrameDelay converts a GIF delay, in hundredths of a second, to a duration.
// A zero or negative delay means the file did not specify one and is
// returned as zero so callers can substitute their own default.
func FrameDelay(centiseconds int) time.Duration {
	if centiseconds <= 0 {
		return 0
	}
	return time.Duration(centiseconds) * 10 * time.Millisecond
}
