package autometa

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/meta/gifmeta"
	"github.com/spriteframes/spriteframes/meta/pngmeta"
)

var ErrUnrecognised = errors.New("unrecognised image format")

func load_with_seekable(r io.Reader, callback func(io.Reader) error) (stream io.Reader, err error) {
	if s, ok := r.(io.ReadSeeker); ok {
		pos, err := s.Seek(0, io.SeekCurrent)
		if err == nil {
			defer func() {
				_, serr := s.Seek(pos, io.SeekStart)
				if err == nil {
					err = serr
				}
			}()
			err = callback(bufio.NewReader(s))
			return s, err
		}
	}
	rewindBuffer := &bytes.Buffer{}
	tee := io.TeeReader(r, rewindBuffer)
	err = callback(bufio.NewReader(tee))
	return io.MultiReader(rewindBuffer, r), err
}

// Load loads the metadata for an image stream that is one of the animated
// container formats (GIF, PNG/APNG).
//
// Only as much of the stream is consumed as necessary to extract the metadata;
// the returned stream yields the full original data so the image can be
// decoded from it afterwards.
//
// ErrUnrecognised is returned, along with the intact stream, when no loader
// recognised the data. Other still image formats are then left to the
// decoders registered with the image package. When a loader recognised the
// signature of its format but could not parse the header, its error is
// returned instead, again with the intact stream.
func Load(r io.Reader) (md *meta.Data, imgStream io.Reader, err error) {
	loaders := []func(io.Reader) (*meta.Data, error){
		gifmeta.ExtractMetadata,
		pngmeta.ExtractMetadata,
	}
	var failures []error
	for _, loader := range loaders {
		r, err = load_with_seekable(r, func(r io.Reader) (err error) {
			md, err = loader(r)
			return
		})
		if err == nil {
			return md, r, nil
		}
		if !errors.Is(err, meta.ErrFormatMismatch) {
			failures = append(failures, err)
		}
	}
	if len(failures) > 0 {
		return nil, r, errors.Join(failures...)
	}
	return nil, r, ErrUnrecognised
}
