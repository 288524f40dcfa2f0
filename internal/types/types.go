package types

type Transcript struct {
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Words flattens every segment's words into one ordered stream.
func (t Transcript) Words() []Word {
	n := 0
	for _, s := range t.Segments {
		n += len(s.Words)
	}
	out := make([]Word, 0, n)
	for _, s := range t.Segments {
		out = append(out, s.Words...)
	}
	return out
}

// Interval is a keep-region of the source media, in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (iv Interval) Duration() float64 { return iv.End - iv.Start }

type MediaKind int

const (
	AudioOnly MediaKind = iota
	Video
)

func (k MediaKind) String() string {
	if k == Video {
		return "video"
	}
	return "audio"
}

type Stream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`

	Disposition map[string]int `json:"disposition,omitempty"`
}

// StreamInfo is what a prober reports about a media file. Duration is 0
// when the container does not expose one.
type StreamInfo struct {
	Streams  []Stream
	Duration float64
}

// CodecSpec describes how a segment or final artifact is encoded.
// Copy selects stream copy and ignores the codec fields.
type CodecSpec struct {
	Copy       bool
	VideoCodec string
	AudioCodec string
	Args       []string
}

type SegmentFile struct {
	Path    string
	Ordinal int
}

type Report struct {
	JobID       string     `json:"job_id"`
	Input       string     `json:"input"`
	MediaKind   string     `json:"media_kind,omitempty"`
	Intervals   []Interval `json:"intervals"`
	KeptSeconds float64    `json:"kept_seconds"`
	Output      string     `json:"output"`
	Transcript  string     `json:"transcript,omitempty"`
}
