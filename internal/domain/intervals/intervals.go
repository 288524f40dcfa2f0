package intervals

import (
	"github.com/forPelevin/fillercut/internal/domain/fillers"
	"github.com/forPelevin/fillercut/internal/types"
)

// Classifier decides whether a normalized word is a filler.
type Classifier interface {
	IsFiller(word string) bool
}

type Options struct {
	StartPad    float64
	EndPad      float64
	MinDuration float64
}

func DefaultOptions() Options {
	return Options{StartPad: 0.2, EndPad: 0.2, MinDuration: 0.3}
}

// Build scans the transcript's words once, left to right, and returns the
// keep-intervals between filler runs. A run of non-filler words opens at the
// first word's start minus StartPad and closes at the next filler's start
// minus EndPad, or at the last word's end plus EndPad. Intervals not longer
// than MinDuration are dropped. The result is start-ordered and
// non-overlapping by construction.
func Build(tr types.Transcript, c Classifier, opt Options) []types.Interval {
	words := tr.Words()
	if len(words) == 0 {
		return nil
	}

	var out []types.Interval
	open := false
	var curStart, lastEnd float64
	for _, w := range words {
		norm := fillers.Normalize(w.Word)
		if norm == "" {
			// punctuation-only tokens carry no speech of their own
			continue
		}
		if c.IsFiller(norm) {
			if open {
				out = append(out, types.Interval{Start: curStart, End: nonNegative(w.Start - opt.EndPad)})
				open = false
			}
			continue
		}
		if !open {
			curStart = nonNegative(w.Start - opt.StartPad)
			open = true
		}
		lastEnd = w.End
	}
	if open {
		out = append(out, types.Interval{Start: curStart, End: lastEnd + opt.EndPad})
	}

	kept := out[:0]
	for _, iv := range out {
		if iv.Duration() > opt.MinDuration {
			kept = append(kept, iv)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// Total returns the summed duration of the intervals in seconds.
func Total(ivs []types.Interval) float64 {
	var sum float64
	for _, iv := range ivs {
		sum += iv.Duration()
	}
	return sum
}

func nonNegative(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
