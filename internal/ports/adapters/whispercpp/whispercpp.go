package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/forPelevin/fillercut/internal/types"
)

type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Transcribe runs whisper.cpp with one word per output segment so every entry
// carries its own offsets, then regroups the words into sentences.
func (a *Adapter) Transcribe(ctx context.Context, wavPath, cacheDir string) (types.Transcript, error) {
	outPrefix := filepath.Join(cacheDir, "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-ml", "1",
		"-sow",
		"-oj",
		"-of", outPrefix,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.Transcript{}, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return types.Transcript{}, err
	}
	return parseOutput(jb)
}

type output struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseOutput(b []byte) (types.Transcript, error) {
	var out output
	if err := json.Unmarshal(b, &out); err != nil {
		return types.Transcript{}, fmt.Errorf("parse whisper.cpp output: %w", err)
	}

	var tr types.Transcript
	var cur types.Segment
	var text []string
	flush := func() {
		if len(cur.Words) == 0 {
			return
		}
		cur.Start = cur.Words[0].Start
		cur.End = cur.Words[len(cur.Words)-1].End
		cur.Text = strings.Join(text, " ")
		tr.Segments = append(tr.Segments, cur)
		cur = types.Segment{}
		text = nil
	}
	for _, e := range out.Transcription {
		w := strings.TrimSpace(e.Text)
		if w == "" {
			continue
		}
		cur.Words = append(cur.Words, types.Word{
			Start: float64(e.Offsets.From) / 1000,
			End:   float64(e.Offsets.To) / 1000,
			Word:  w,
		})
		text = append(text, w)
		if strings.ContainsAny(w[len(w)-1:], ".?!") {
			flush()
		}
	}
	flush()
	return tr, nil
}
