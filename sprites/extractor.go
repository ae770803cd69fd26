package sprites

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spriteframes/spriteframes"
	"github.com/spriteframes/spriteframes/internal/logging"
)

// Extractor turns one animated source into per-frame PNG files.
type Extractor struct {
	logger          *slog.Logger
	uniformDuration bool
	decodeOptions   []spriteframes.DecodeOption
	encodeOptions   []spriteframes.EncodeOption
}

type ExtractorOption func(*Extractor)

// WithUniformDuration makes every frame record carry the sprite's default
// duration instead of the duration the container specifies for that frame.
func WithUniformDuration(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.uniformDuration = enabled
	}
}

func WithDecodeOptions(opts ...spriteframes.DecodeOption) ExtractorOption {
	return func(e *Extractor) {
		e.decodeOptions = append(e.decodeOptions, opts...)
	}
}

func WithEncodeOptions(opts ...spriteframes.EncodeOption) ExtractorOption {
	return func(e *Extractor) {
		e.encodeOptions = append(e.encodeOptions, opts...)
	}
}

func NewExtractor(logger *slog.Logger, opts ...ExtractorOption) *Extractor {
	if logger == nil {
		logger = logging.Discard()
	}
	e := &Extractor{logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract decodes job.Source and writes every frame, composited onto the
// full sprite canvas and converted to RGBA, as
// job.OutputDir/{job.Name}_frame_{index:03d}.png. The returned result lists
// the frames in index order. Failures are reported as a *JobError.
func (e *Extractor) Extract(ctx context.Context, job Job) (*SpriteResult, error) {
	img, err := spriteframes.OpenAll(job.Source, e.decodeOptions...)
	if err != nil {
		return nil, job_error(job.Source, ErrDecode, err)
	}
	img.Coalesce()
	b := img.Bounds()
	default_delay := img.DefaultDelay()
	n := len(img.Frames)
	log := e.logger.With("sprite", job.Name)
	log.Info("processing", "source", job.Source, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"frames", n, "duration_ms", milliseconds(default_delay))

	if err = os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return nil, job_error(job.Source, ErrWrite, err)
	}
	ans := &SpriteResult{
		Name: job.Name, Width: b.Dx(), Height: b.Dy(),
		FrameCount: n, FrameDuration: milliseconds(default_delay),
		Frames: make([]FrameRecord, 0, n),
	}
	for i, f := range img.Frames {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: extraction interrupted: %w", job.Source, err)
		}
		frame, err := spriteframes.ToNRGBA(f.Image)
		if err != nil {
			return nil, job_error(job.Source, ErrWrite, fmt.Errorf("converting frame %d: %w", i, err))
		}
		filename := FrameFilename(job.Name, i)
		if err = spriteframes.Save(frame, filepath.Join(job.OutputDir, filename), e.encodeOptions...); err != nil {
			return nil, job_error(job.Source, ErrWrite, err)
		}
		d := f.Delay
		if e.uniformDuration || d <= 0 {
			d = default_delay
		}
		ans.Frames = append(ans.Frames, FrameRecord{Filename: filename, FrameNumber: i, Duration: milliseconds(d)})
		log.Debug("frame saved", "frame", fmt.Sprintf("%d/%d", i+1, n), "file", filename)
	}
	return ans, nil
}
