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
		Use:          "beatcut <clip>...",
		Short:        "Assemble a single music-synced video from raw clips",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("audio", "", "Background audio track (required)")
	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("output", "", "Explicit output file path")
	root.Flags().String("strategy", "rhythm", "Distribution strategy: rhythm, energy or even")
	root.Flags().String("transition", "", "Transition between clips: fade, dissolve, wipe or slide")
	root.Flags().Float64("transition-duration", 0.5, "Transition duration in seconds")
	root.Flags().Float64("min-clip", 2.0, "Minimum clip duration in seconds")
	root.Flags().String("config", "", "YAML config file")
	root.Flags().BoolP("verbose", "v", false, "Debug logging")
	_ = root.MarkFlagRequired("audio")

	// Hidden tuning flags (internal)
	root.Flags().Int("energy-segments", 0, "Energy segment count")
	root.Flags().Int("trim-workers", 0, "Concurrent trim operations")
	_ = root.Flags().MarkHidden("energy-segments")
	_ = root.Flags().MarkHidden("trim-workers")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
