package meta

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/spriteframes/spriteframes/types"
)

var _ = fmt.Println

// ErrFormatMismatch is wrapped by the errors metadata loaders return when the
// data does not start with the signature of their format.
var ErrFormatMismatch = errors.New("data is not in this format")

// Data represents the metadata for an image.
type Data struct {
	Format      types.Format
	PixelWidth  uint32
	PixelHeight uint32
	HasFrames   bool
	// NumFrames and NumPlays are only known up front for containers that
	// declare them in a header chunk (APNG). For GIF they stay zero until
	// the frames are decoded.
	NumFrames, NumPlays int
	exifData            []byte
	exif                *exif.Exif
	exifErr             error
	mutex               sync.Mutex
}

// Returns an extracted EXIF metadata object from this metadata.
//
// An error is returned if the EXIF data could not be correctly parsed.
//
// If no EXIF data was found, nil is returned without an error.
func (md *Data) Exif() (*exif.Exif, error) {
	md.mutex.Lock()
	defer md.mutex.Unlock()

	if md.exifErr != nil {
		return nil, md.exifErr
	}
	if md.exif != nil {
		return md.exif, nil
	}
	if len(md.exifData) == 0 {
		return nil, nil
	}
	md.exif, md.exifErr = exif.Decode(bytes.NewReader(md.exifData))
	return md.exif, md.exifErr
}

// SetExifData stores the raw bytes of a file that carries EXIF data. They are
// only parsed on the first call to Exif().
func (md *Data) SetExifData(data []byte) {
	md.mutex.Lock()
	defer md.mutex.Unlock()
	md.exifData = data
	md.exifErr = nil
	md.exif = nil
}

func (md *Data) SetExif(e *exif.Exif) {
	md.mutex.Lock()
	defer md.mutex.Unlock()
	md.exifData = nil
	md.exifErr = nil
	md.exif = e
}

func (md *Data) String() string {
	return fmt.Sprintf("%s %dx%d frames=%v", md.Format, md.PixelWidth, md.PixelHeight, md.HasFrames)
}
