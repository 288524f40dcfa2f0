package trim

import (
	"strings"

	"github.com/forPelevin/fillercut/internal/types"
)

const defaultExtension = ".mp4"

var videoOnlyContainers = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".webm": true,
	".avi":  true,
}

// audioOnlyContainers cannot carry a video stream.
var audioOnlyContainers = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".m4a":  true,
	".aac":  true,
}

// videoSpec is shared by every video segment so the final concat can stream
// copy.
var videoSpec = types.CodecSpec{
	VideoCodec: "libx264",
	AudioCodec: "aac",
	Args: []string{
		"-preset", "veryfast",
		"-crf", "18",
		"-pix_fmt", "yuv420p",
		"-b:a", "192k",
		"-ar", "48000",
	},
}

// ResolveExtension normalizes the requested extension and, for audio-only
// sources, swaps video containers for .m4a.
func ResolveExtension(ext string, kind types.MediaKind) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if kind == types.AudioOnly && videoOnlyContainers[ext] {
		return ".m4a"
	}
	return ext
}

// OutputKind is the kind of the trimmed artifact. A video source written to
// an audio-only container drops its picture.
func OutputKind(kind types.MediaKind, ext string) types.MediaKind {
	if kind == types.Video && audioOnlyContainers[ext] {
		return types.AudioOnly
	}
	return kind
}

// SegmentSpec picks the encoding used when cutting one interval.
func SegmentSpec(kind types.MediaKind, ext string) types.CodecSpec {
	if kind == types.Video {
		return cloneSpec(videoSpec)
	}
	return audioSpec(ext)
}

// ConcatSpec picks the encoding used when joining segments.
func ConcatSpec(kind types.MediaKind, ext string) types.CodecSpec {
	if kind == types.Video {
		return types.CodecSpec{Copy: true}
	}
	return audioSpec(ext)
}

func audioSpec(ext string) types.CodecSpec {
	switch ext {
	case ".mp3":
		return types.CodecSpec{AudioCodec: "libmp3lame", Args: []string{"-vn", "-q:a", "2"}}
	case ".wav":
		return types.CodecSpec{AudioCodec: "pcm_s16le", Args: []string{"-vn"}}
	case ".flac":
		return types.CodecSpec{AudioCodec: "flac", Args: []string{"-vn"}}
	case ".ogg", ".opus":
		return types.CodecSpec{AudioCodec: "libopus", Args: []string{"-vn", "-b:a", "128k"}}
	default:
		return types.CodecSpec{AudioCodec: "aac", Args: []string{"-vn", "-b:a", "192k", "-strict", "experimental"}}
	}
}

func cloneSpec(s types.CodecSpec) types.CodecSpec {
	s.Args = append([]string(nil), s.Args...)
	return s
}
