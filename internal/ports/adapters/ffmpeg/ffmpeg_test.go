package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forPelevin/fillercut/internal/types"
)

func TestParseProbe(t *testing.T) {
	raw := []byte(`{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"filename": "in.mp4", "duration": "12.480000"}
}`)
	info, err := parseProbe(raw)
	require.NoError(t, err)
	require.Len(t, info.Streams, 2)
	assert.Equal(t, "video", info.Streams[0].CodecType)
	assert.Equal(t, "aac", info.Streams[1].CodecName)
	assert.InDelta(t, 12.48, info.Duration, 1e-9)
}

func TestParseProbe_MissingDuration(t *testing.T) {
	info, err := parseProbe([]byte(`{"streams":[{"codec_type":"audio"}],"format":{"duration":"N/A"}}`))
	require.NoError(t, err)
	assert.Zero(t, info.Duration)

	_, err = parseProbe([]byte(`not json`))
	require.Error(t, err)
}

func TestCodecArgs(t *testing.T) {
	assert.Equal(t, []string{"-c", "copy"}, codecArgs(types.CodecSpec{Copy: true, AudioCodec: "aac"}))
	assert.Equal(t,
		[]string{"-c:v", "libx264", "-c:a", "aac", "-b:a", "192k"},
		codecArgs(types.CodecSpec{VideoCodec: "libx264", AudioCodec: "aac", Args: []string{"-b:a", "192k"}}),
	)
	assert.Equal(t, []string{"-c:a", "libmp3lame", "-vn"}, codecArgs(types.CodecSpec{AudioCodec: "libmp3lame", Args: []string{"-vn"}}))
}

func TestFmtSeconds(t *testing.T) {
	assert.Equal(t, "1.100", fmtSeconds(1.1))
	assert.Equal(t, "0.000", fmtSeconds(0))
	assert.Equal(t, "61.235", fmtSeconds(61.2349))
}
