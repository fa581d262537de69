package usecase

import (
	"context"
	"fmt"

	"github.com/avolkov/beatcut/internal/domain/distribute"
	"github.com/avolkov/beatcut/internal/types"
)

const (
	StrategyRhythm = "rhythm"
	StrategyEnergy = "energy"
	StrategyEven   = "even"
)

const defaultEnergySegments = 8

type PlanInput struct {
	ClipPaths       []string
	AudioPath       string
	Strategy        string
	MinClipDuration float64

	// EnergySegments is the segment count for the energy strategy,
	// defaultEnergySegments when zero.
	EnergySegments int
}

// BuildPlan analyzes the clip references, resolves the target duration from
// the audio track and dispatches the named strategy. Unknown strategy names
// fall back to even. The returned plan is never mutated afterwards.
func (u *Usecase) BuildPlan(ctx context.Context, in PlanInput) (types.EditPlan, error) {
	clips := u.AnalyzeClips(ctx, in.ClipPaths)
	if len(clips) == 0 {
		return types.EditPlan{}, ErrNoValidClips
	}

	audioDuration, err := u.d.Audio.Duration(ctx, in.AudioPath)
	if err != nil {
		return types.EditPlan{}, fmt.Errorf("audio duration: %w", err)
	}

	strategy := in.Strategy
	var distributed []types.DistributedClip
	switch strategy {
	case StrategyRhythm:
		points, err := u.d.Audio.RhythmPoints(ctx, in.AudioPath)
		if err != nil {
			return types.EditPlan{}, fmt.Errorf("rhythm points: %w", err)
		}
		distributed = distribute.ByRhythm(clips, points, audioDuration, in.MinClipDuration, u.rng)
	case StrategyEnergy:
		count := in.EnergySegments
		if count <= 0 {
			count = defaultEnergySegments
		}
		segments, err := u.d.Audio.EnergySegments(ctx, in.AudioPath, count)
		if err != nil {
			return types.EditPlan{}, fmt.Errorf("energy segments: %w", err)
		}
		distributed = distribute.ByEnergy(clips, segments)
	default:
		if strategy != StrategyEven {
			u.log.Warn().Str("strategy", strategy).Msg("unknown strategy, using even")
		}
		strategy = StrategyEven
		distributed = distribute.Even(clips, audioDuration, in.MinClipDuration, u.rng)
	}

	u.log.Info().
		Str("strategy", strategy).
		Int("clips", len(clips)).
		Int("distributed", len(distributed)).
		Float64("target_sec", audioDuration).
		Msg("edit plan built")

	return types.EditPlan{
		Clips:         clips,
		AudioPath:     in.AudioPath,
		AudioDuration: audioDuration,
		Strategy:      strategy,
		Distributed:   distributed,
	}, nil
}
