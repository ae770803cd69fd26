package pngmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/types"
)

var _ = fmt.Print

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

var ErrNotPNG = fmt.Errorf("%w: not a PNG stream", meta.ErrFormatMismatch)

// Upper bound on the size of chunks we are willing to skip over while
// looking for acTL. Anything larger is not a sprite.
const maxChunkSize = 64 * 1024 * 1024

// ExtractMetadata reads the PNG header chunks up to the first IDAT. The
// presence of an acTL chunk before IDAT marks the stream as an APNG.
func ExtractMetadata(r io.Reader) (md *meta.Data, err error) {
	sig := make([]byte, len(pngSignature))
	if _, err = io.ReadFull(r, sig); err != nil || !bytes.Equal(sig, pngSignature) {
		return nil, ErrNotPNG
	}
	md = &meta.Data{Format: types.PNG}
	var header [8]byte
	seen_ihdr := false
	for {
		if _, err = io.ReadFull(r, header[:]); err != nil {
			return nil, fmt.Errorf("truncated PNG chunk header: %w", err)
		}
		length := binary.BigEndian.Uint32(header[:4])
		if length > maxChunkSize {
			return nil, fmt.Errorf("PNG chunk too large: %d", length)
		}
		chunk_type := string(header[4:8])
		switch chunk_type {
		case "IHDR", "acTL":
			data := make([]byte, length)
			if _, err = io.ReadFull(r, data); err != nil {
				return nil, err
			}
			if len(data) < 8 {
				return nil, fmt.Errorf("invalid %s chunk of length %d", chunk_type, length)
			}
			a, b := binary.BigEndian.Uint32(data[:4]), binary.BigEndian.Uint32(data[4:8])
			if chunk_type == "IHDR" {
				md.PixelWidth, md.PixelHeight = a, b
				seen_ihdr = true
			} else {
				md.HasFrames = true
				md.NumFrames, md.NumPlays = int(a), int(b)
			}
			if _, err = io.CopyN(io.Discard, r, 4); err != nil {
				return nil, err
			}
		case "IDAT", "IEND":
			if !seen_ihdr {
				return nil, fmt.Errorf("PNG stream has no IHDR chunk")
			}
			return md, nil
		default:
			if _, err = io.CopyN(io.Discard, r, int64(length)+4); err != nil {
				return nil, err
			}
		}
	}
}
