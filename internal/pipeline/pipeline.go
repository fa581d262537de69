// Package pipeline wires the adapters to the usecase layer and runs one full
// planning-and-execution pass.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/avolkov/beatcut/internal/ports"
	"github.com/avolkov/beatcut/internal/ports/adapters/aubio"
	"github.com/avolkov/beatcut/internal/ports/adapters/ffmpeg"
	"github.com/avolkov/beatcut/internal/types"
	"github.com/avolkov/beatcut/internal/usecase"
)

type Config struct {
	ClipPaths []string
	AudioPath string

	// OutputPath is the final artifact location. When empty a timestamped
	// path under OutDir is generated.
	OutputPath string
	OutDir     string

	Strategy        string
	MinClipDuration float64
	EnergySegments  int

	TransitionType     string
	TransitionDuration float64

	ScratchDir  string
	TrimWorkers int

	FFmpegPath  string
	FFprobePath string
	AubioPath   string

	Logger zerolog.Logger
}

func (c Config) Validate() error {
	if len(c.ClipPaths) == 0 {
		return errors.New("no input clips")
	}
	for _, p := range c.ClipPaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("stat clip: %w", err)
		}
	}
	if c.AudioPath == "" {
		return errors.New("audio track is required")
	}
	if _, err := os.Stat(c.AudioPath); err != nil {
		return fmt.Errorf("stat audio: %w", err)
	}
	if c.MinClipDuration <= 0 {
		return errors.New("min clip duration must be > 0")
	}
	if c.TransitionType != "" && c.TransitionDuration <= 0 {
		return errors.New("transition duration must be > 0")
	}
	return nil
}

// Run builds an edit plan for the configured clips and executes it. The
// execution result is also written as JSON next to the output artifact.
func Run(ctx context.Context, cfg Config) (types.ExecutionResult, error) {
	// adapters
	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath, cfg.Logger)
	audio := aubio.New(cfg.AubioPath, cfg.FFmpegPath, cfg.FFprobePath, cfg.Logger)

	uc := usecase.New(usecase.Deps{Media: media, Audio: audio}, cfg.Logger)

	outputPath := cfg.OutputPath
	if outputPath == "" {
		outDir := cfg.OutDir
		if outDir == "" {
			outDir = "out"
		}
		outputPath = buildOutputPath(outDir, cfg.AudioPath, time.Now().UTC())
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return types.ExecutionResult{}, err
	}

	plan, err := uc.BuildPlan(ctx, usecase.PlanInput{
		ClipPaths:       cfg.ClipPaths,
		AudioPath:       cfg.AudioPath,
		Strategy:        cfg.Strategy,
		MinClipDuration: cfg.MinClipDuration,
		EnergySegments:  cfg.EnergySegments,
	})
	if err != nil {
		return types.ExecutionResult{}, err
	}

	res, err := uc.ExecutePlan(ctx, plan, usecase.ExecOptions{
		OutputPath:         outputPath,
		TransitionType:     cfg.TransitionType,
		TransitionDuration: cfg.TransitionDuration,
		ScratchRoot:        cfg.ScratchDir,
		TrimWorkers:        cfg.TrimWorkers,
	})
	if err != nil {
		return types.ExecutionResult{}, err
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return types.ExecutionResult{}, fmt.Errorf("marshal result: %w", err)
	}
	resultPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".json"
	if err := os.WriteFile(resultPath, b, 0o644); err != nil {
		return types.ExecutionResult{}, err
	}
	cfg.Logger.Info().Str("result", resultPath).Msg("result manifest written")

	return res, nil
}

// buildOutputPath derives a collision-resistant artifact path from the audio
// track name and the wall clock.
func buildOutputPath(outDir, audioPath string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	name = normalizePathSegment(name)
	if name == "" {
		name = "edit"
	}
	ts := now.UTC().Format("20060102-150405Z")
	seed := fmt.Sprintf("%s|%d", audioPath, now.UTC().UnixNano())
	suffix := hash(seed)[:6]
	return filepath.Join(outDir, fmt.Sprintf("%s-%s-%s.mp4", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.MediaOps = (*ffmpeg.Adapter)(nil)
var _ ports.AudioAnalyzer = (*aubio.Adapter)(nil)
