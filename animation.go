package spriteframes

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/kettek/apng"
	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/meta/gifmeta"
)

var _ = fmt.Print

// DefaultFrameDelay is used for frames whose container does not specify how
// long they should be shown.
const DefaultFrameDelay = 100 * time.Millisecond

type Frame struct {
	Number   uint
	X, Y     int
	Image    image.Image `json:"-"`
	Delay    time.Duration
	Disposal uint8 // one of the gif.Disposal* constants, applied after this frame is shown
	Replace  bool  // Do a simple pixel replacement rather than a full alpha blend when compositing this frame
}

type Animation struct {
	Frames       []*Frame
	Metadata     *meta.Data
	LoopCount    uint        // 0 means loop forever, 1 means loop once, ...
	DefaultImage image.Image `json:"-"` // a "default image" for an animation that is not part of the actual animation
}

func apng_delay(num, den uint16) time.Duration {
	if num == 0 {
		return 0
	}
	if den == 0 {
		den = 100
	}
	return time.Duration(num) * time.Second / time.Duration(den)
}

func (self *Animation) populate_from_apng(p *apng.APNG) {
	self.LoopCount = p.LoopCount
	for _, f := range p.Frames {
		if f.IsDefault {
			self.DefaultImage = f.Image
			continue
		}
		frame := Frame{Number: uint(len(self.Frames) + 1), Image: f.Image, X: f.XOffset, Y: f.YOffset,
			Replace:  f.BlendOp == apng.BLEND_OP_SOURCE,
			Delay:    apng_delay(f.DelayNumerator, f.DelayDenominator),
			Disposal: gif.DisposalNone,
		}
		switch f.DisposeOp {
		case apng.DISPOSE_OP_BACKGROUND:
			frame.Disposal = gif.DisposalBackground
		case apng.DISPOSE_OP_PREVIOUS:
			frame.Disposal = gif.DisposalPrevious
		}
		self.Frames = append(self.Frames, &frame)
	}
}

func (self *Animation) populate_from_gif(g *gif.GIF) {
	for i, img := range g.Image {
		b := img.Bounds()
		frame := Frame{
			Number: uint(len(self.Frames) + 1), Image: img, X: b.Min.X, Y: b.Min.Y,
			Delay: gifmeta.FrameDelay(g.Delay[i]),
		}
		if i < len(g.Disposal) {
			frame.Disposal = g.Disposal[i]
		}
		self.Frames = append(self.Frames, &frame)
	}
	switch {
	case g.LoopCount == 0:
		self.LoopCount = 0
	case g.LoopCount < 0:
		self.LoopCount = 1
	default:
		self.LoopCount = uint(g.LoopCount) + 1
	}
	if self.Metadata != nil && (self.Metadata.PixelWidth == 0 || self.Metadata.PixelHeight == 0) {
		self.Metadata.PixelWidth, self.Metadata.PixelHeight = uint32(g.Config.Width), uint32(g.Config.Height)
	}
}

// Clone returns a copy of the animation whose frames can be modified
// independently. Pixel data is shared, which is safe since Coalesce() only
// ever replaces frame images, it never draws into them.
func (self *Animation) Clone() *Animation {
	ans := *self
	ans.Frames = make([]*Frame, len(self.Frames))
	for i, f := range self.Frames {
		nf := *f
		ans.Frames[i] = &nf
	}
	return &ans
}

// DefaultDelay is the delay the container reports for the animation as a
// whole, that is the delay of its first frame, falling back to
// DefaultFrameDelay.
func (self *Animation) DefaultDelay() time.Duration {
	if len(self.Frames) > 0 && self.Frames[0].Delay > 0 {
		return self.Frames[0].Delay
	}
	return DefaultFrameDelay
}

// Bounds returns the logical screen of the animation.
func (self *Animation) Bounds() image.Rectangle {
	if md := self.Metadata; md != nil && md.PixelWidth > 0 && md.PixelHeight > 0 {
		return image.Rect(0, 0, int(md.PixelWidth), int(md.PixelHeight))
	}
	var r image.Rectangle
	for _, f := range self.Frames {
		b := f.Image.Bounds()
		r = r.Union(image.Rect(f.X, f.Y, f.X+b.Dx(), f.Y+b.Dy()))
	}
	return image.Rect(0, 0, r.Max.X, r.Max.Y)
}

func clone_nrgba(img *image.NRGBA) *image.NRGBA {
	ans := *img
	ans.Pix = make([]uint8, len(img.Pix))
	copy(ans.Pix, img.Pix)
	return &ans
}

// Coalesce all animation frames so that each frame is a snapshot of the
// animation at that instant. Afterwards every frame is an *image.NRGBA
// covering the full logical screen.
func (self *Animation) Coalesce() {
	full := self.Bounds()
	if len(self.Frames) == 1 {
		f := self.Frames[0]
		if _, ok := f.Image.(*image.NRGBA); ok && f.X == 0 && f.Y == 0 && f.Image.Bounds() == full {
			return
		}
	}
	canvas := image.NewNRGBA(full)
	var saved *image.NRGBA
	for _, f := range self.Frames {
		b := f.Image.Bounds()
		r := image.Rect(f.X, f.Y, f.X+b.Dx(), f.Y+b.Dy())
		if f.Disposal == gif.DisposalPrevious {
			saved = clone_nrgba(canvas)
		}
		op := draw.Over
		if f.Replace {
			op = draw.Src
		}
		draw.Draw(canvas, r, f.Image, b.Min, op)
		f.Image = clone_nrgba(canvas)
		switch f.Disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, r, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = saved
		}
		f.X, f.Y = 0, 0
		f.Replace = true
		f.Disposal = gif.DisposalNone
	}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// delay_fraction expresses d as an APNG delay fraction in seconds, with
// millisecond precision.
func delay_fraction(d time.Duration) (num, den uint16) {
	ms := d.Milliseconds()
	if ms <= 0 {
		return 0, 1
	}
	if ms <= math.MaxUint16 {
		g := gcd(ms, 1000)
		return uint16(ms / g), uint16(1000 / g)
	}
	s := int64(d.Round(time.Second) / time.Second)
	return uint16(min(s, math.MaxUint16)), 1
}

func (self *Animation) as_apng() (ans apng.APNG) {
	ans.LoopCount = self.LoopCount
	if self.DefaultImage != nil {
		ans.Frames = append(ans.Frames, apng.Frame{Image: self.DefaultImage, IsDefault: true})
	}
	for _, f := range self.Frames {
		d := apng.Frame{
			DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE, XOffset: f.X, YOffset: f.Y, Image: f.Image,
		}
		if !f.Replace {
			d.BlendOp = apng.BLEND_OP_OVER
		}
		switch f.Disposal {
		case gif.DisposalBackground:
			d.DisposeOp = apng.DISPOSE_OP_BACKGROUND
		case gif.DisposalPrevious:
			d.DisposeOp = apng.DISPOSE_OP_PREVIOUS
		}
		d.DelayNumerator, d.DelayDenominator = delay_fraction(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the animation as an APNG, or as a plain PNG when it has
// a single frame.
func (self *Animation) EncodeAsPNG(w io.Writer) error {
	if len(self.Frames) == 0 {
		return fmt.Errorf("cannot encode an animation with no frames")
	}
	img := self.Clone()
	img.Coalesce()
	if len(img.Frames) == 1 {
		return png.Encode(w, img.Frames[0].Image)
	}
	return apng.Encode(w, img.as_apng())
}
