//go:build integration

package itest

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"

	"github.com/forPelevin/fillercut/internal/ports/adapters/ffmpeg"
)

// findRepoRoot resolves the module root from this file's location,
// internal/itest/helpers.go.
func findRepoRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("could not locate itest sources")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..")), nil
}

func probeDurationSeconds(path string) (float64, error) {
	info, err := ffmpeg.New("", "").Probe(context.Background(), path)
	if err != nil {
		return 0, err
	}
	if info.Duration <= 0 {
		return 0, errors.New("ffprobe reported no duration for " + path)
	}
	return info.Duration, nil
}
