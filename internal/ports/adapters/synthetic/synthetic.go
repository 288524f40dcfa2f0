// Package synthetic is a Transcoder that works on small JSON files describing
// media instead of real media. It lets the trim engine run end to end in
// tests without ffmpeg.
package synthetic

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/types"
)

// Media is the on-disk form of a synthetic file.
type Media struct {
	Streams  []string        `json:"streams"`
	Duration float64         `json:"duration"`
	Codec    types.CodecSpec `json:"codec"`
}

type Adapter struct {
	// FailExtractAt makes the n-th Extract call (1-based) fail. Zero disables.
	FailExtractAt int
	// DropExtractAt makes the n-th Extract call succeed without writing output.
	DropExtractAt int
	FailConcat    bool
	FailProbe     bool

	Extracted []types.Interval
	Specs     []types.CodecSpec
	Manifests []string
}

func New() *Adapter { return &Adapter{} }

var _ ports.Transcoder = (*Adapter)(nil)

func WriteMedia(path string, m Media) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func ReadMedia(path string) (Media, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Media{}, err
	}
	var m Media
	if err := json.Unmarshal(b, &m); err != nil {
		return Media{}, fmt.Errorf("synthetic media %s: %w", path, err)
	}
	return m, nil
}

func (a *Adapter) Probe(_ context.Context, path string) (types.StreamInfo, error) {
	if a.FailProbe {
		return types.StreamInfo{}, errors.New("synthetic probe failure")
	}
	m, err := ReadMedia(path)
	if err != nil {
		return types.StreamInfo{}, err
	}
	info := types.StreamInfo{Duration: m.Duration}
	for i, kind := range m.Streams {
		info.Streams = append(info.Streams, types.Stream{Index: i, CodecType: kind})
	}
	return info, nil
}

func (a *Adapter) Extract(ctx context.Context, in string, iv types.Interval, spec types.CodecSpec, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.Extracted = append(a.Extracted, iv)
	a.Specs = append(a.Specs, spec)
	n := len(a.Extracted)
	if n == a.FailExtractAt {
		return fmt.Errorf("synthetic extract %d failed", n)
	}
	if n == a.DropExtractAt {
		return nil
	}
	src, err := ReadMedia(in)
	if err != nil {
		return err
	}
	end := iv.End
	if src.Duration > 0 && end > src.Duration {
		end = src.Duration
	}
	return WriteMedia(out, Media{Streams: src.Streams, Duration: end - iv.Start, Codec: spec})
}

func (a *Adapter) Concat(ctx context.Context, manifest string, spec types.CodecSpec, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	paths, err := readManifest(manifest)
	if err != nil {
		return err
	}
	a.Manifests = append(a.Manifests, strings.Join(paths, "\n"))
	if a.FailConcat {
		return errors.New("synthetic concat failure")
	}
	if len(paths) == 0 {
		return errors.New("synthetic concat: empty manifest")
	}

	var total float64
	var streams []string
	var first types.CodecSpec
	for i, p := range paths {
		m, err := ReadMedia(p)
		if err != nil {
			return err
		}
		if i == 0 {
			first = m.Codec
			streams = m.Streams
		} else if spec.Copy && !reflect.DeepEqual(first, m.Codec) {
			return fmt.Errorf("synthetic concat: stream copy across mismatched codecs in %s", p)
		}
		total += m.Duration
	}
	codec := spec
	if spec.Copy {
		codec = first
	}
	return WriteMedia(out, Media{Streams: streams, Duration: total, Codec: codec})
}

func readManifest(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rest, ok := strings.CutPrefix(line, "file ")
		if !ok {
			return nil, fmt.Errorf("synthetic concat: bad manifest line %q", line)
		}
		out = append(out, unquote(rest))
	}
	return out, sc.Err()
}

// unquote reverses the concat demuxer's single-quote escaping.
func unquote(s string) string {
	s = strings.TrimPrefix(s, "'")
	s = strings.TrimSuffix(s, "'")
	return strings.ReplaceAll(s, `'\''`, `'`)
}
