package ports

import (
	"context"

	"github.com/forPelevin/fillercut/internal/types"
)

// Transcoder is the media tool the trim engine drives. Extract writes exactly
// one file at out, overwriting it. Concat reads a concat-demuxer manifest.
type Transcoder interface {
	Probe(ctx context.Context, path string) (types.StreamInfo, error)
	Extract(ctx context.Context, in string, iv types.Interval, spec types.CodecSpec, out string) error
	Concat(ctx context.Context, manifest string, spec types.CodecSpec, out string) error
}

type AudioExtractor interface {
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
}

type ASR interface {
	Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error)
}
