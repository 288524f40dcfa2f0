package trim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/types"
)

type Concatenator struct {
	tool ports.Transcoder
	log  hclog.Logger
}

func NewConcatenator(tool ports.Transcoder, log hclog.Logger) *Concatenator {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Concatenator{tool: tool, log: log}
}

// Concat joins segs in order into out. Video is stream copied, audio is
// re-encoded with the codec for ext. The manifest is always removed.
func (c *Concatenator) Concat(ctx context.Context, segs []types.SegmentFile, kind types.MediaKind, ext, manifest, out string) error {
	if len(segs) == 0 {
		return &ConcatError{Output: out, Err: fmt.Errorf("no segments")}
	}
	body, err := buildManifest(segs)
	if err != nil {
		return &ConcatError{Output: out, Segments: len(segs), Err: err}
	}
	if err := os.WriteFile(manifest, []byte(body), 0o644); err != nil {
		return &ConcatError{Output: out, Segments: len(segs), Err: fmt.Errorf("write manifest: %w", err)}
	}
	defer removeQuietly(c.log, manifest)

	c.log.Debug("concatenating segments", "segments", len(segs), "kind", kind, "output", out)
	if err := c.tool.Concat(ctx, manifest, ConcatSpec(kind, ext), out); err != nil {
		removeQuietly(c.log, out)
		return &ConcatError{Output: out, Segments: len(segs), Err: err}
	}
	return nil
}

// buildManifest renders the concat demuxer list: one `file '<abs path>'` per
// line, single quotes escaped the way the demuxer expects.
func buildManifest(segs []types.SegmentFile) (string, error) {
	var b strings.Builder
	for _, s := range segs {
		abs, err := filepath.Abs(s.Path)
		if err != nil {
			return "", err
		}
		b.WriteString("file '")
		b.WriteString(strings.ReplaceAll(abs, "'", `'\''`))
		b.WriteString("'\n")
	}
	return b.String(), nil
}
