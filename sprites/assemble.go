package sprites

import (
	"fmt"
	"image/gif"
	"path/filepath"
	"time"

	"github.com/spriteframes/spriteframes"
	"github.com/spriteframes/spriteframes/meta"
	"github.com/spriteframes/spriteframes/types"
)

// Assemble loads the frames of r from dir, the directory they were extracted
// to, back into an animation using the durations recorded in the manifest.
func Assemble(dir string, r *SpriteResult) (*spriteframes.Animation, error) {
	if len(r.Frames) == 0 {
		return nil, fmt.Errorf("sprite %s has no frames", r.Name)
	}
	ans := &spriteframes.Animation{Metadata: &meta.Data{
		Format: types.PNG, PixelWidth: uint32(r.Width), PixelHeight: uint32(r.Height),
		HasFrames: len(r.Frames) > 1, NumFrames: len(r.Frames),
	}}
	for _, rec := range r.Frames {
		img, err := spriteframes.Open(filepath.Join(dir, rec.Filename))
		if err != nil {
			return nil, fmt.Errorf("loading frame %d of %s: %w", rec.FrameNumber, r.Name, err)
		}
		ans.Frames = append(ans.Frames, &spriteframes.Frame{
			Number: uint(rec.FrameNumber + 1), Image: img, Replace: true, Disposal: gif.DisposalNone,
			Delay: time.Duration(rec.Duration) * time.Millisecond,
		})
	}
	return ans, nil
}
