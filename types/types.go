package types

import (
	"fmt"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"apng": PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "UNKNOWN"
}

// FormatFromDecoderName maps the format name reported by image.Decode to a
// Format.
func FormatFromDecoderName(x string) Format {
	switch x {
	case "jpeg":
		return JPEG
	case "png", "apng":
		return PNG
	case "gif":
		return GIF
	case "tiff":
		return TIFF
	case "webp":
		return WEBP
	case "bmp":
		return BMP
	}
	return UNKNOWN
}

// HasExif reports whether files of this format can carry an EXIF block that
// affects how the pixels should be displayed.
func (f Format) HasExif() bool {
	return f == JPEG || f == TIFF
}
