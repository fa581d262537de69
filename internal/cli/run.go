package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/avolkov/beatcut/internal/config"
	"github.com/avolkov/beatcut/internal/logging"
	"github.com/avolkov/beatcut/internal/pipeline"
)

func run(cmd *cobra.Command, clips []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logging.Init(verbose)

	configPath, _ := cmd.Flags().GetString("config")
	cfgFile, err := config.Load(configPath)
	if err != nil {
		return err
	}

	audio, _ := cmd.Flags().GetString("audio")
	outDir, _ := cmd.Flags().GetString("out")
	output, _ := cmd.Flags().GetString("output")
	strategy, _ := cmd.Flags().GetString("strategy")
	transition, _ := cmd.Flags().GetString("transition")
	transitionDur, _ := cmd.Flags().GetFloat64("transition-duration")
	minClip, _ := cmd.Flags().GetFloat64("min-clip")
	energySegments, _ := cmd.Flags().GetInt("energy-segments")
	trimWorkers, _ := cmd.Flags().GetInt("trim-workers")

	absClips := make([]string, len(clips))
	for i, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			return err
		}
		absClips[i] = abs
	}
	absAudio, err := filepath.Abs(audio)
	if err != nil {
		return err
	}

	if minClip <= 0 {
		minClip = cfgFile.MinClipDuration
	}
	if energySegments <= 0 {
		energySegments = cfgFile.EnergySegments
	}
	if trimWorkers <= 0 {
		trimWorkers = cfgFile.TrimWorkers
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		ClipPaths: absClips,
		AudioPath: absAudio,

		OutputPath: output,
		OutDir:     outDir,

		Strategy:        strategy,
		MinClipDuration: minClip,
		EnergySegments:  energySegments,

		TransitionType:     transition,
		TransitionDuration: transitionDur,

		ScratchDir:  cfgFile.ScratchDir,
		TrimWorkers: trimWorkers,

		FFmpegPath:  cfgFile.FFmpegPath,
		FFprobePath: cfgFile.FFprobePath,
		AubioPath:   cfgFile.AubioPath,

		Logger: log.Logger,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	res, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%.1fs, %d clips, %s strategy)\n",
		res.OutputPath, res.Duration, res.ClipCount, res.Strategy)
	return nil
}
