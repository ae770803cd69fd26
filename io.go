package spriteframes

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kettek/apng"
	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/meta/autometa"
	"github.com/spriteframes/spriteframes/types"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	JPEG    = types.JPEG
	PNG     = types.PNG
	GIF     = types.GIF
	TIFF    = types.TIFF
	WEBP    = types.WEBP
	BMP     = types.BMP
)

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("spriteframes: unsupported image format")

// ErrMissingCodec means a codec needed to read sprites or write frames is not
// compiled into the binary.
var ErrMissingCodec = errors.New("spriteframes: required image codec is not available")

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, still images will be transformed after
// decoding according to the EXIF orientation tag (if present). By default
// it's enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
}

func decode_still(r io.Reader, cfg *decodeConfig) (*Animation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	md := &meta.Data{
		Format:      types.FormatFromDecoderName(name),
		PixelWidth:  uint32(img.Bounds().Dx()),
		PixelHeight: uint32(img.Bounds().Dy()),
		NumFrames:   1,
	}
	ans := &Animation{Metadata: md, Frames: []*Frame{{Number: 1, Image: img}}}
	if md.Format.HasExif() {
		md.SetExifData(data)
		if cfg.autoOrientation {
			if err = fix_orientation(ans); err != nil {
				return nil, err
			}
		}
	}
	return ans, nil
}

func decode_all(r io.Reader, cfg *decodeConfig) (ans *Animation, err error) {
	md, r, lerr := autometa.Load(r)
	if md == nil {
		if ans, err = decode_still(r, cfg); err != nil && !errors.Is(lerr, autometa.ErrUnrecognised) {
			err = fmt.Errorf("%w: %w", err, lerr)
		}
		return ans, err
	}
	ans = &Animation{Metadata: md}
	switch {
	case md.Format == GIF:
		g, err := gif.DecodeAll(r)
		if err != nil {
			return nil, err
		}
		ans.populate_from_gif(g)
	case md.Format == PNG && md.HasFrames:
		p, err := apng.DecodeAll(r)
		if err != nil {
			return nil, err
		}
		ans.populate_from_apng(&p)
	default:
		img, err := png.Decode(r)
		if err != nil {
			return nil, err
		}
		ans.Frames = append(ans.Frames, &Frame{Number: 1, Image: img})
	}
	if len(ans.Frames) == 0 {
		return nil, fmt.Errorf("%s image contains no frames", md.Format)
	}
	md.NumFrames = len(ans.Frames)
	return ans, nil
}

// DecodeAll decodes an image from r including all animation frames if it is
// an animated image.
func DecodeAll(r io.Reader, opts ...DecodeOption) (*Animation, error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	return decode_all(r, &cfg)
}

// Decode reads an image from r. For animations this is the default image if
// present, otherwise the first frame.
func Decode(r io.Reader, opts ...DecodeOption) (image.Image, error) {
	ans, err := DecodeAll(r, opts...)
	if err != nil {
		return nil, err
	}
	if ans.DefaultImage != nil {
		return ans.DefaultImage, nil
	}
	return ans.Frames[0].Image, nil
}

// Open loads an image from file.
//
// Examples:
//
//	// Load an image from file.
//	img, err := spriteframes.Open("link_walk_back_frame_000.png")
func Open(filename string, opts ...DecodeOption) (image.Image, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, opts...)
}

// OpenAll loads every frame of an image file.
func OpenAll(filename string, opts ...DecodeOption) (*Animation, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodeAll(file, opts...)
}

// FormatFromExtension parses image format from filename extension.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from filename.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	return FormatFromExtension(ext)
}

type encodeConfig struct {
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes the image img to w in the specified format. Frames are
// always written losslessly so only PNG is supported.
func Encode(w io.Writer, img image.Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	switch format {
	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, img)
	}
	return ErrUnsupportedFormat
}

// Save saves the image to file with the specified filename.
// The format is determined from the filename extension.
//
// Examples:
//
//	// Save the image as PNG.
//	err := spriteframes.Save(img, "out.png")
func Save(img image.Image, filename string, opts ...EncodeOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = Encode(file, img, f, opts...)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}

// CheckCodecs verifies that the codecs needed to read sprites (GIF) and write
// frames (PNG) are registered with the image package.
func CheckCodecs() error {
	probe := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Transparent, color.White})
	encoders := []struct {
		format Format
		encode func(io.Writer, image.Image) error
	}{
		{GIF, func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) }},
		{PNG, png.Encode},
	}
	for _, e := range encoders {
		var buf bytes.Buffer
		if err := e.encode(&buf, probe); err != nil {
			return fmt.Errorf("%w: cannot encode %s: %s", ErrMissingCodec, e.format, err)
		}
		// the APNG decoder registers itself for PNG data too
		if _, name, err := image.DecodeConfig(&buf); err != nil || types.FormatFromDecoderName(name) != e.format {
			return fmt.Errorf("%w: no %s decoder registered", ErrMissingCodec, e.format)
		}
	}
	return nil
}
