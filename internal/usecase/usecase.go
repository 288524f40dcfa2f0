package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/domain/intervals"
	"github.com/forPelevin/fillercut/internal/domain/subtitles"
	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/trim"
	"github.com/forPelevin/fillercut/internal/types"
)

type Trimmer interface {
	Trim(ctx context.Context, job trim.Job) (trim.Result, error)
}

type Deps struct {
	Audio      ports.AudioExtractor
	ASR        ports.ASR
	Trimmer    Trimmer
	Classifier intervals.Classifier
	Logger     hclog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = hclog.NewNullLogger()
	}
	return Usecase{d: d}
}

type Input struct {
	JobID     string
	InputPath string
	Extension string
	// TranscriptPath skips audio extraction and ASR when set.
	TranscriptPath string
	Subtitles      bool
	CacheDir       string
	OutDir         string
}

type Result struct {
	Report types.Report
	Trim   trim.Result
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Logger.With("job", in.JobID)

	tr, err := u.transcript(ctx, in, log)
	if err != nil {
		return Result{}, err
	}
	trPath := filepath.Join(in.OutDir, in.JobID+"_transcript.json")
	if err := writeJSON(trPath, tr); err != nil {
		return Result{}, fmt.Errorf("save transcript: %w", err)
	}
	log.Info("transcript saved", "path", trPath, "segments", len(tr.Segments), "words", len(tr.Words()))

	res, err := u.d.Trimmer.Trim(ctx, trim.Job{
		ID:         in.JobID,
		Input:      in.InputPath,
		Extension:  in.Extension,
		Transcript: tr,
	})
	if err != nil {
		return Result{}, err
	}
	log.Debug("trim finished", "result", res.String())

	rep := types.Report{
		JobID:       in.JobID,
		Input:       in.InputPath,
		Intervals:   res.Intervals,
		KeptSeconds: intervals.Total(res.Intervals),
		Output:      res.Output,
		Transcript:  trPath,
	}
	if rep.Intervals == nil {
		rep.Intervals = []types.Interval{}
	}
	if res.HasOutput() {
		rep.MediaKind = res.Kind.String()
	}

	if in.Subtitles && res.HasOutput() {
		assPath := filepath.Join(in.OutDir, in.JobID+"_processed.ass")
		ass := subtitles.RenderTrimmedASS(tr, res.Intervals, u.d.Classifier)
		if err := os.WriteFile(assPath, []byte(ass), 0o644); err != nil {
			return Result{}, fmt.Errorf("write subtitles: %w", err)
		}
		log.Info("subtitles written", "path", assPath)
	}

	return Result{Report: rep, Trim: res}, nil
}

func (u Usecase) transcript(ctx context.Context, in Input, log hclog.Logger) (types.Transcript, error) {
	if in.TranscriptPath != "" {
		b, err := os.ReadFile(in.TranscriptPath)
		if err != nil {
			return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
		}
		var tr types.Transcript
		if err := json.Unmarshal(b, &tr); err != nil {
			return types.Transcript{}, fmt.Errorf("parse transcript %s: %w", in.TranscriptPath, err)
		}
		log.Debug("transcript loaded", "path", in.TranscriptPath)
		return tr, nil
	}
	if u.d.Audio == nil || u.d.ASR == nil {
		return types.Transcript{}, errors.New("no transcript file and no ASR configured")
	}

	wav := filepath.Join(in.CacheDir, in.JobID+"_audio.wav")
	log.Info("extracting audio", "path", wav)
	if err := u.d.Audio.ExtractAudioMono16k(ctx, in.InputPath, wav); err != nil {
		return types.Transcript{}, err
	}
	defer func() {
		if err := os.Remove(wav); err != nil && !os.IsNotExist(err) {
			log.Warn("failed to remove audio", "path", wav, "error", err)
		}
	}()

	log.Info("transcribing")
	return u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
