package trim

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/types"
)

// Source is a probed input file.
type Source struct {
	Path     string
	Kind     types.MediaKind
	Duration float64
}

// ProbeSource classifies path as Video when any stream is a video stream.
// Probe failures fail open to AudioOnly with an unknown duration; a corrupt
// video is then cut as audio.
func ProbeSource(ctx context.Context, tool ports.Transcoder, path string, log hclog.Logger) Source {
	src := Source{Path: path, Kind: types.AudioOnly}
	info, err := tool.Probe(ctx, path)
	if err != nil {
		log.Warn("probe failed, treating input as audio-only", "path", path, "error", &ProbeError{Path: path, Err: err})
		return src
	}
	src.Kind = KindOf(info)
	src.Duration = info.Duration
	return src
}

func KindOf(info types.StreamInfo) types.MediaKind {
	for _, s := range info.Streams {
		// cover art in audio files shows up as a single-frame video stream
		if s.CodecType == "video" && s.Disposition["attached_pic"] == 0 {
			return types.Video
		}
	}
	return types.AudioOnly
}
