// Package publish uploads extracted frames and the manifest to an S3
// compatible object store.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spriteframes/spriteframes/internal/logging"
	"github.com/spriteframes/spriteframes/sprites"
)

const (
	PNGContentType  = "image/png"
	JSONContentType = "application/json"
)

// ObjectStore is a bucket files can be uploaded to.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	PutFile(ctx context.Context, key, filename, content_type string) error
}

type Publisher struct {
	store  ObjectStore
	prefix string
	logger *slog.Logger
}

// NewPublisher returns a Publisher that uploads to store, with every object
// key starting with prefix.
func NewPublisher(store ObjectStore, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Publisher{store: store, prefix: strings.Trim(prefix, "/"), logger: logger}
}

// Key is the object key of filename: its path relative to frames_dir with
// forward slashes, or the name of its parent directory and its file name
// when it is not inside frames_dir.
func (p *Publisher) Key(frames_dir, filename string) string {
	rel, err := filepath.Rel(frames_dir, filename)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Join(filepath.Base(filepath.Dir(filename)), filepath.Base(filename))
	}
	rel = filepath.ToSlash(rel)
	if p.prefix == "" {
		return rel
	}
	return path.Join(p.prefix, rel)
}

// Publish uploads every frame of the succeeded jobs in reports followed by
// the manifest. Upload failures do not stop the remaining uploads, all of
// them are returned joined. Returns the number of objects uploaded.
func (p *Publisher) Publish(ctx context.Context, frames_dir, manifest string, reports []sprites.JobReport) (uploaded int, err error) {
	if err = p.store.EnsureBucket(ctx); err != nil {
		return 0, err
	}
	var errs []error
	put := func(filename, content_type string) {
		key := p.Key(frames_dir, filename)
		if err := p.store.PutFile(ctx, key, filename, content_type); err != nil {
			p.logger.Error("upload failed", "key", key, "error", err)
			errs = append(errs, fmt.Errorf("uploading %s: %w", filename, err))
			return
		}
		uploaded++
		p.logger.Debug("uploaded", "key", key)
	}
	for _, r := range reports {
		if r.Status != sprites.StatusSucceeded {
			continue
		}
		for _, f := range r.Result.Frames {
			if ctx.Err() != nil {
				return uploaded, errors.Join(append(errs, ctx.Err())...)
			}
			put(filepath.Join(r.Job.OutputDir, f.Filename), PNGContentType)
		}
	}
	put(manifest, JSONContentType)
	return uploaded, errors.Join(errs...)
}
