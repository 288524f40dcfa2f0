package trim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoragePaths_Names(t *testing.T) {
	p := StoragePaths{TempDir: "temp", OutputDir: "processed"}
	assert.Equal(t, filepath.Join("temp", "job1_part_3.mp4"), p.SegmentPath("job1", 3, ".mp4"))
	assert.Equal(t, filepath.Join("processed", "job1_processed.m4a"), p.OutputPath("job1", ".m4a"))
	assert.Equal(t, filepath.Join("processed", "job1_concat_list.txt"), p.ManifestPath("job1"))
}

func TestStoragePaths_Ensure(t *testing.T) {
	root := t.TempDir()
	p := StoragePaths{TempDir: filepath.Join(root, "a", "temp"), OutputDir: filepath.Join(root, "out")}
	require.NoError(t, p.Ensure())
	for _, d := range []string{p.TempDir, p.OutputDir} {
		fi, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, fi.IsDir())
	}

	require.Error(t, StoragePaths{}.Ensure())
}

func TestValidateJobID(t *testing.T) {
	assert.NoError(t, ValidateJobID("3f2c-uuid"))
	assert.Error(t, ValidateJobID(""))
	assert.Error(t, ValidateJobID("  "))
	assert.Error(t, ValidateJobID("../escape"))
	assert.Error(t, ValidateJobID(".."))
}
