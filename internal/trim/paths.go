package trim

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StoragePaths holds the directories a trim job writes into. Segment files go
// to TempDir; the final artifact and the concat manifest go to OutputDir.
type StoragePaths struct {
	TempDir   string
	OutputDir string
}

func (p StoragePaths) Ensure() error {
	if p.TempDir == "" || p.OutputDir == "" {
		return errors.New("storage paths: temp and output dirs are required")
	}
	for _, dir := range []string{p.TempDir, p.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage paths: %w", err)
		}
	}
	return nil
}

func (p StoragePaths) SegmentPath(jobID string, ordinal int, ext string) string {
	return filepath.Join(p.TempDir, fmt.Sprintf("%s_part_%d%s", jobID, ordinal, ext))
}

func (p StoragePaths) OutputPath(jobID, ext string) string {
	return filepath.Join(p.OutputDir, jobID+"_processed"+ext)
}

func (p StoragePaths) ManifestPath(jobID string) string {
	return filepath.Join(p.OutputDir, jobID+"_concat_list.txt")
}

// ValidateJobID rejects ids that are empty or could resolve outside the
// storage dirs once joined into a path.
func ValidateJobID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("job id is empty")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("job id %q must not contain path separators", id)
	}
	return nil
}
