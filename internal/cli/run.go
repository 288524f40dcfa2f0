package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/forPelevin/fillercut/internal/pipeline"
)

func run(cmd *cobra.Command, input string) error {
	outDir, _ := cmd.Flags().GetString("out")
	tempDir, _ := cmd.Flags().GetString("temp")
	jobID, _ := cmd.Flags().GetString("job-id")
	transcript, _ := cmd.Flags().GetString("transcript")
	fillersPath, _ := cmd.Flags().GetString("fillers")
	ext, _ := cmd.Flags().GetString("ext")
	subs, _ := cmd.Flags().GetBool("subtitles")
	level, _ := cmd.Flags().GetString("log-level")
	startPad, _ := cmd.Flags().GetFloat64("start-pad")
	endPad, _ := cmd.Flags().GetFloat64("end-pad")
	minDur, _ := cmd.Flags().GetFloat64("min-duration")

	if fillersPath == "" {
		fillersPath = os.Getenv("FILLERCUT_FILLERS")
	}
	if jobID == "" {
		jobID = uuid.NewString()
	}

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	logger := newLogger(getenvDefault("FILLERCUT_LOG_LEVEL", "info"), level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		Input:          absIn,
		JobID:          jobID,
		OutDir:         outDir,
		TempDir:        tempDir,
		Extension:      ext,
		TranscriptPath: transcript,
		FillersPath:    fillersPath,
		Subtitles:      subs,

		StartPad:    startPad,
		EndPad:      endPad,
		MinDuration: minDur,

		FFmpegPath:  getenvDefault("FILLERCUT_FFMPEG", "ffmpeg"),
		FFprobePath: getenvDefault("FILLERCUT_FFPROBE", "ffprobe"),

		WhisperBin:   getenvDefault("FILLERCUT_WHISPER_BIN", ".cache/bin/whisper.cpp"),
		WhisperModel: os.Getenv("FILLERCUT_WHISPER_MODEL"),

		Logger: logger,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	rep, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if rep.Output == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: nothing to trim\n", jobID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (kept %.1fs in %d intervals)\n", jobID, rep.Output, rep.KeptSeconds, len(rep.Intervals))
	return nil
}

func newLogger(envLevel, flagLevel string) hclog.Logger {
	lvl := envLevel
	if flagLevel != "" {
		lvl = flagLevel
	}
	l := hclog.LevelFromString(lvl)
	if l == hclog.NoLevel {
		l = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "fillercut",
		Level:  l,
		Output: os.Stderr,
	})
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
