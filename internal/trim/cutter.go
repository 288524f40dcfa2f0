package trim

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/types"
)

type Cutter struct {
	tool  ports.Transcoder
	paths StoragePaths
	log   hclog.Logger
}

func NewCutter(tool ports.Transcoder, paths StoragePaths, log hclog.Logger) *Cutter {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Cutter{tool: tool, paths: paths, log: log}
}

// Cut extracts one interval of src into {jobID}_part_{ordinal}{ext} under the
// temp dir, overwriting any previous file there. On failure the partial file
// is removed and a *CutError is returned.
func (c *Cutter) Cut(ctx context.Context, jobID string, src Source, iv types.Interval, ordinal int, ext string) (types.SegmentFile, error) {
	if src.Duration > 0 && iv.End > src.Duration {
		iv.End = src.Duration
	}
	out := c.paths.SegmentPath(jobID, ordinal, ext)
	spec := SegmentSpec(src.Kind, ext)

	c.log.Debug("cutting segment", "job", jobID, "ordinal", ordinal, "start", iv.Start, "end", iv.End, "kind", src.Kind)
	if err := c.tool.Extract(ctx, src.Path, iv, spec, out); err != nil {
		removeQuietly(c.log, out)
		return types.SegmentFile{}, &CutError{Ordinal: ordinal, Interval: iv, Err: err}
	}
	if fi, err := os.Stat(out); err != nil || fi.IsDir() {
		return types.SegmentFile{}, &CutError{Ordinal: ordinal, Interval: iv, Err: ErrNoSegmentOutput}
	}
	return types.SegmentFile{Path: out, Ordinal: ordinal}, nil
}

// ClampIntervals drops intervals that start at or past the source duration
// and trims the last one to it. A zero duration means unknown and leaves the
// intervals untouched.
func ClampIntervals(ivs []types.Interval, duration float64) []types.Interval {
	if duration <= 0 {
		return ivs
	}
	out := make([]types.Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Start >= duration {
			break
		}
		if iv.End > duration {
			iv.End = duration
		}
		out = append(out, iv)
	}
	return out
}

func removeQuietly(log hclog.Logger, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to remove file", "path", path, "error", err)
	}
}
