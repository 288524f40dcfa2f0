package trim

import (
	"errors"
	"fmt"

	"github.com/forPelevin/fillercut/internal/types"
)

var ErrNoSegmentOutput = errors.New("segment file was not produced")

// ProbeError is never returned to callers; the probe falls back to
// audio-only and logs it.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string { return fmt.Sprintf("probe %s: %v", e.Path, e.Err) }
func (e *ProbeError) Unwrap() error { return e.Err }

// CutError aborts a trim job.
type CutError struct {
	Ordinal  int
	Interval types.Interval
	Err      error
}

func (e *CutError) Error() string {
	return fmt.Sprintf("cut segment %d [%.3f-%.3f]: %v", e.Ordinal, e.Interval.Start, e.Interval.End, e.Err)
}

func (e *CutError) Unwrap() error { return e.Err }

// ConcatError aborts a trim job after every segment was cut.
type ConcatError struct {
	Output   string
	Segments int
	Err      error
}

func (e *ConcatError) Error() string {
	return fmt.Sprintf("concat %d segments into %s: %v", e.Segments, e.Output, e.Err)
}

func (e *ConcatError) Unwrap() error { return e.Err }
