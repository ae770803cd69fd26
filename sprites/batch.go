package sprites

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spriteframes/spriteframes/internal/logging"
)

// FrameExtractor is implemented by Extractor.
type FrameExtractor interface {
	Extract(ctx context.Context, job Job) (*SpriteResult, error)
}

type JobStatus string

const (
	StatusPending   JobStatus = "PENDING"
	StatusSkipped   JobStatus = "SKIPPED"
	StatusFailed    JobStatus = "FAILED"
	StatusSucceeded JobStatus = "SUCCEEDED"
)

// JobReport is the outcome of one job of a batch.
type JobReport struct {
	Job    Job
	Status JobStatus
	Result *SpriteResult
	Err    error
}

// Batch runs a list of jobs in order and collects their results into a
// Summary. The failure of one job never stops the jobs after it.
type Batch struct {
	extractor FrameExtractor
	logger    *slog.Logger
	observer  func(JobReport)
}

type BatchOption func(*Batch)

// WithObserver makes the batch call f with the report of every job as soon
// as that job is done, before the next one starts.
func WithObserver(f func(JobReport)) BatchOption {
	return func(b *Batch) {
		b.observer = f
	}
}

func NewBatch(extractor FrameExtractor, logger *slog.Logger, opts ...BatchOption) *Batch {
	if logger == nil {
		logger = logging.Discard()
	}
	b := &Batch{extractor: extractor, logger: logger}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Batch) run_job(ctx context.Context, job Job, summary *Summary) JobReport {
	report := JobReport{Job: job, Status: StatusPending}
	if _, err := os.Stat(job.Source); errors.Is(err, fs.ErrNotExist) {
		report.Status, report.Err = StatusSkipped, job_error(job.Source, ErrSourceMissing, nil)
		b.logger.Warn("source file not found, skipping", "sprite", job.Name, "source", job.Source)
		return report
	}
	res, err := b.extractor.Extract(ctx, job)
	if err != nil {
		report.Status, report.Err = StatusFailed, err
		b.logger.Error("failed to process sprite", "sprite", job.Name, "error", err)
		return report
	}
	report.Status, report.Result = StatusSucceeded, res
	if summary.Add(res) {
		b.logger.Warn("sprite name used more than once, replacing earlier result", "sprite", res.Name)
	}
	b.logger.Info("sprite extracted", "sprite", job.Name, "frames", res.FrameCount)
	return report
}

// Run processes jobs in list order. Jobs not started because ctx was
// cancelled are reported as StatusPending.
func (b *Batch) Run(ctx context.Context, jobs []Job) (*Summary, []JobReport) {
	summary := NewSummary()
	reports := make([]JobReport, 0, len(jobs))
	for _, job := range jobs {
		var r JobReport
		if ctx.Err() != nil {
			r = JobReport{Job: job, Status: StatusPending, Err: ctx.Err()}
		} else {
			r = b.run_job(ctx, job, summary)
		}
		reports = append(reports, r)
		if b.observer != nil {
			b.observer(r)
		}
	}
	return summary, reports
}

// Count returns how many reports have the given status.
func Count(reports []JobReport, status JobStatus) (ans int) {
	for _, r := range reports {
		if r.Status == status {
			ans++
		}
	}
	return
}
