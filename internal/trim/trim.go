// Package trim cuts filler words out of a recording. It turns a word-level
// transcript into keep-intervals, cuts each interval from the source with a
// Transcoder and joins the pieces into one file.
//
// A Trimmer holds no per-job state. Jobs may run concurrently as long as
// their ids differ, since every file a job touches is keyed by its id.
package trim

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/domain/intervals"
	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/types"
)

type Deps struct {
	Transcoder ports.Transcoder
	Classifier intervals.Classifier
	Paths      StoragePaths
	Options    intervals.Options
	Logger     hclog.Logger
}

type Trimmer struct {
	tool   ports.Transcoder
	cls    intervals.Classifier
	paths  StoragePaths
	opts   intervals.Options
	log    hclog.Logger
	cutter *Cutter
	concat *Concatenator
}

func New(d Deps) *Trimmer {
	log := d.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Trimmer{
		tool:   d.Transcoder,
		cls:    d.Classifier,
		paths:  d.Paths,
		opts:   d.Options,
		log:    log,
		cutter: NewCutter(d.Transcoder, d.Paths, log),
		concat: NewConcatenator(d.Transcoder, log),
	}
}

type Job struct {
	ID         string
	Input      string
	Extension  string
	Transcript types.Transcript
}

// Result describes a finished job. Output is empty when the transcript had
// nothing worth keeping.
type Result struct {
	Output    string
	Extension string
	Kind      types.MediaKind
	Intervals []types.Interval
}

func (r Result) HasOutput() bool { return r.Output != "" }

// Trim builds keep-intervals, cuts them and concatenates the segments into
// {job}_processed{ext} under the output dir. Segment files are removed on
// every path out of Trim.
func (t *Trimmer) Trim(ctx context.Context, job Job) (Result, error) {
	if err := ValidateJobID(job.ID); err != nil {
		return Result{}, err
	}
	log := t.log.With("job", job.ID)

	ivs := intervals.Build(job.Transcript, t.cls, t.opts)
	if len(ivs) == 0 {
		log.Info("no keep intervals, nothing to trim")
		return Result{}, nil
	}
	if err := t.paths.Ensure(); err != nil {
		return Result{}, err
	}

	src := ProbeSource(ctx, t.tool, job.Input, log)
	ivs = ClampIntervals(ivs, src.Duration)
	if len(ivs) == 0 {
		log.Info("keep intervals lie past the end of the media, nothing to trim", "duration", src.Duration)
		return Result{}, nil
	}
	ext := ResolveExtension(job.Extension, src.Kind)
	if kind := OutputKind(src.Kind, ext); kind != src.Kind {
		log.Info("audio-only container requested, dropping video", "ext", ext)
		src.Kind = kind
	}
	log.Info("trimming", "kind", src.Kind, "intervals", len(ivs), "kept_seconds", intervals.Total(ivs), "ext", ext)

	segs := make([]types.SegmentFile, 0, len(ivs))
	defer func() { t.cleanup(log, segs) }()

	for i, iv := range ivs {
		seg, err := t.cutter.Cut(ctx, job.ID, src, iv, i, ext)
		if err != nil {
			return Result{}, err
		}
		segs = append(segs, seg)
	}

	out := t.paths.OutputPath(job.ID, ext)
	if err := t.concat.Concat(ctx, segs, src.Kind, ext, t.paths.ManifestPath(job.ID), out); err != nil {
		return Result{}, err
	}
	log.Info("trimmed", "output", out, "segments", len(segs))
	return Result{Output: out, Extension: ext, Kind: src.Kind, Intervals: ivs}, nil
}

func (t *Trimmer) cleanup(log hclog.Logger, segs []types.SegmentFile) {
	for _, s := range segs {
		removeQuietly(log, s.Path)
	}
}

func (r Result) String() string {
	if !r.HasOutput() {
		return "no output"
	}
	return fmt.Sprintf("%s (%s, %d intervals)", r.Output, r.Kind, len(r.Intervals))
}
