package sprites

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMissing means the job's source file does not exist.
	ErrSourceMissing = errors.New("source file not found")
	// ErrDecode means the source could not be opened or decoded.
	ErrDecode = errors.New("cannot decode sprite")
	// ErrWrite means a frame could not be converted or written.
	ErrWrite = errors.New("cannot write frame")
)

// JobError is the reason a job did not produce a SpriteResult. Kind is one
// of ErrSourceMissing, ErrDecode or ErrWrite; both Kind and the underlying
// error match with errors.Is.
type JobError struct {
	Source string
	Kind   error
	Err    error
}

func (e *JobError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Err)
}

func (e *JobError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func job_error(source string, kind, err error) error {
	return &JobError{Source: source, Kind: kind, Err: err}
}
