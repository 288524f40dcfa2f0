package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/forPelevin/fillercut/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-f", "wav",
		outWav,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w\n%s", err, string(b))
	}
	return nil
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []types.Stream `json:"streams"`
}

func (a *Adapter) Probe(ctx context.Context, path string) (types.StreamInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	b, err := cmd.Output()
	if err != nil {
		var stderr []byte
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = ee.Stderr
		}
		return types.StreamInfo{}, fmt.Errorf("ffprobe streams: %w\n%s", err, string(stderr))
	}
	return parseProbe(b)
}

func parseProbe(b []byte) (types.StreamInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(b, &out); err != nil {
		return types.StreamInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	info := types.StreamInfo{Streams: out.Streams}
	if s := strings.TrimSpace(out.Format.Duration); s != "" && s != "N/A" {
		sec, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.StreamInfo{}, fmt.Errorf("parse duration %q: %w", s, err)
		}
		info.Duration = sec
	}
	return info, nil
}

func (a *Adapter) Extract(ctx context.Context, in string, iv types.Interval, spec types.CodecSpec, out string) error {
	args := []string{
		"-y",
		"-ss", fmtSeconds(iv.Start),
		"-to", fmtSeconds(iv.End),
		"-i", in,
	}
	args = append(args, codecArgs(spec)...)
	args = append(args, out)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg extract segment: %w\n%s", err, string(b))
	}
	return nil
}

func (a *Adapter) Concat(ctx context.Context, manifest string, spec types.CodecSpec, out string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
	}
	args = append(args, codecArgs(spec)...)
	args = append(args, out)
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat: %w\n%s", err, string(b))
	}
	return nil
}

func codecArgs(spec types.CodecSpec) []string {
	if spec.Copy {
		return []string{"-c", "copy"}
	}
	var args []string
	if spec.VideoCodec != "" {
		args = append(args, "-c:v", spec.VideoCodec)
	}
	if spec.AudioCodec != "" {
		args = append(args, "-c:a", spec.AudioCodec)
	}
	return append(args, spec.Args...)
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
