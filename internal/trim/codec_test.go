package trim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forPelevin/fillercut/internal/types"
)

func TestResolveExtension(t *testing.T) {
	tests := []struct {
		in   string
		kind types.MediaKind
		want string
	}{
		{".mp4", types.Video, ".mp4"},
		{"MOV", types.Video, ".mov"},
		{"", types.Video, ".mp4"},
		{".mp4", types.AudioOnly, ".m4a"},
		{"", types.AudioOnly, ".m4a"},
		{".MP3", types.AudioOnly, ".mp3"},
		{"wav", types.AudioOnly, ".wav"},
	}
	for _, tt := range tests {
		t.Run(tt.in+"/"+tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExtension(tt.in, tt.kind))
		})
	}
}

func TestSegmentSpec_VideoIsFixed(t *testing.T) {
	a := SegmentSpec(types.Video, ".mp4")
	b := SegmentSpec(types.Video, ".mkv")
	assert.Equal(t, a, b)
	assert.Equal(t, "libx264", a.VideoCodec)
	assert.Equal(t, "aac", a.AudioCodec)
	assert.False(t, a.Copy)

	a.Args[0] = "mutated"
	assert.Equal(t, "-preset", SegmentSpec(types.Video, ".mp4").Args[0])
}

func TestAudioSpecs(t *testing.T) {
	assert.Equal(t, "libmp3lame", SegmentSpec(types.AudioOnly, ".mp3").AudioCodec)
	assert.Equal(t, "pcm_s16le", SegmentSpec(types.AudioOnly, ".wav").AudioCodec)
	assert.Equal(t, "flac", SegmentSpec(types.AudioOnly, ".flac").AudioCodec)

	generic := SegmentSpec(types.AudioOnly, ".m4a")
	assert.Equal(t, "aac", generic.AudioCodec)
	assert.Contains(t, generic.Args, "-strict")
	assert.Empty(t, generic.VideoCodec)
}

func TestConcatSpec(t *testing.T) {
	assert.True(t, ConcatSpec(types.Video, ".mp4").Copy)

	audio := ConcatSpec(types.AudioOnly, ".mp3")
	assert.False(t, audio.Copy)
	assert.Equal(t, SegmentSpec(types.AudioOnly, ".mp3"), audio)
}

func TestOutputKind(t *testing.T) {
	tests := []struct {
		kind types.MediaKind
		ext  string
		want types.MediaKind
	}{
		{types.Video, ".mp4", types.Video},
		{types.Video, ".mkv", types.Video},
		{types.Video, ".wav", types.AudioOnly},
		{types.Video, ".mp3", types.AudioOnly},
		{types.Video, ".flac", types.AudioOnly},
		{types.Video, ".ogg", types.AudioOnly},
		{types.AudioOnly, ".mp3", types.AudioOnly},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputKind(tt.kind, tt.ext))
		})
	}
}

func TestVideoSourceToAudioContainerUsesAudioCodecs(t *testing.T) {
	ext := ResolveExtension("wav", types.Video)
	kind := OutputKind(types.Video, ext)

	seg := SegmentSpec(kind, ext)
	assert.Empty(t, seg.VideoCodec)
	assert.Equal(t, "pcm_s16le", seg.AudioCodec)
	assert.Contains(t, seg.Args, "-vn")

	cat := ConcatSpec(kind, ext)
	assert.False(t, cat.Copy)
	assert.Equal(t, seg, cat)
}
