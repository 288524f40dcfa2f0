package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/forPelevin/fillercut/internal/domain/fillers"
	"github.com/forPelevin/fillercut/internal/domain/intervals"
	"github.com/forPelevin/fillercut/internal/ports"
	"github.com/forPelevin/fillercut/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/fillercut/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/fillercut/internal/trim"
	"github.com/forPelevin/fillercut/internal/types"
	"github.com/forPelevin/fillercut/internal/usecase"
)

type Config struct {
	Input  string
	JobID  string
	OutDir string
	// TempDir holds per-segment files and the ASR scratch directory.
	TempDir string
	// Extension of the trimmed file. Defaults to the input's extension.
	Extension string

	TranscriptPath string
	FillersPath    string
	Subtitles      bool

	StartPad    float64
	EndPad      float64
	MinDuration float64

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	Logger hclog.Logger
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	fi, err := os.Stat(c.Input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("input %s is a directory", c.Input)
	}
	if err := trim.ValidateJobID(c.JobID); err != nil {
		return err
	}
	if c.StartPad < 0 || c.EndPad < 0 {
		return errors.New("pads must be >= 0")
	}
	if c.MinDuration < 0 {
		return errors.New("min duration must be >= 0")
	}
	if c.TranscriptPath == "" && c.WhisperModel == "" {
		return errors.New("whisper model path is required when no transcript is given")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) (types.Report, error) {
	if err := cfg.Validate(); err != nil {
		return types.Report{}, err
	}
	log := cfg.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}

	vocab, err := loadVocabulary(cfg.FillersPath)
	if err != nil {
		return types.Report{}, err
	}
	log.Debug("filler vocabulary", "patterns", vocab.Patterns())

	// adapters
	v := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	asr := whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)

	paths := trim.StoragePaths{TempDir: orDefault(cfg.TempDir, "temp"), OutputDir: orDefault(cfg.OutDir, "processed")}
	log.Debug("preparing workspace", "temp", paths.TempDir, "out", paths.OutputDir)
	if err := paths.Ensure(); err != nil {
		return types.Report{}, err
	}
	cacheDir := filepath.Join(paths.TempDir, cfg.JobID)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return types.Report{}, err
	}
	defer func() {
		if err := os.RemoveAll(cacheDir); err != nil {
			log.Warn("failed to remove cache dir", "path", cacheDir, "error", err)
		}
	}()

	trimmer := trim.New(trim.Deps{
		Transcoder: v,
		Classifier: vocab,
		Paths:      paths,
		Options: intervals.Options{
			StartPad:    cfg.StartPad,
			EndPad:      cfg.EndPad,
			MinDuration: cfg.MinDuration,
		},
		Logger: log.Named("trim"),
	})

	uc := usecase.New(usecase.Deps{
		Audio:      v,
		ASR:        asr,
		Trimmer:    trimmer,
		Classifier: vocab,
		Logger:     log,
	})

	ext := cfg.Extension
	if ext == "" {
		ext = filepath.Ext(cfg.Input)
	}
	res, err := uc.Run(ctx, usecase.Input{
		JobID:          cfg.JobID,
		InputPath:      cfg.Input,
		Extension:      ext,
		TranscriptPath: cfg.TranscriptPath,
		Subtitles:      cfg.Subtitles,
		CacheDir:       cacheDir,
		OutDir:         paths.OutputDir,
	})
	if err != nil {
		return types.Report{}, err
	}

	b, err := json.MarshalIndent(res.Report, "", "  ")
	if err != nil {
		return types.Report{}, fmt.Errorf("marshal report: %w", err)
	}
	reportPath := filepath.Join(paths.OutputDir, cfg.JobID+"_report.json")
	if err := os.WriteFile(reportPath, b, 0o644); err != nil {
		return types.Report{}, err
	}
	log.Info("report written", "path", reportPath, "intervals", len(res.Report.Intervals))
	return res.Report, nil
}

func loadVocabulary(path string) (*fillers.Vocabulary, error) {
	if path == "" {
		return fillers.DefaultVocabulary(), nil
	}
	return fillers.LoadVocabulary(path)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ensure adapters implement ports
var _ ports.Transcoder = (*ffmpeg.Adapter)(nil)
var _ ports.AudioExtractor = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
