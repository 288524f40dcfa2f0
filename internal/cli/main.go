package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "fillercut <input>",
		Short:        "Cut filler words and pauses out of a recording",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("out", "processed", "Output directory")
	root.Flags().String("temp", "temp", "Directory for temporary segment files")
	root.Flags().String("job-id", "", "Job id used to name outputs (default: random UUID)")
	root.Flags().String("transcript", "", "Existing transcript JSON with word timestamps (skips transcription)")
	root.Flags().String("fillers", "", "YAML file with filler patterns (default: built-in list)")
	root.Flags().String("ext", "", "Output extension (default: input extension)")
	root.Flags().Bool("subtitles", false, "Also write karaoke subtitles for the trimmed file")
	root.Flags().String("log-level", "", "Log level: trace|debug|info|warn|error")

	// Tuning flags
	root.Flags().Float64("start-pad", 0.2, "Seconds kept before the first word of a run")
	root.Flags().Float64("end-pad", 0.2, "Seconds kept after the last word of a run")
	root.Flags().Float64("min-duration", 0.3, "Drop keep intervals not longer than this many seconds")
	_ = root.Flags().MarkHidden("min-duration")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
