package distribute

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/beatcut/internal/types"
)

// ByRhythm cuts the timeline at musically significant points: each pair of
// consecutive surviving rhythm points becomes one output interval, filled by
// the next clip in round-robin order. Falls back to Even when the rhythm data
// is too sparse to drive meaningful cuts.
func ByRhythm(clips []types.ClipDescriptor, rhythmPoints []float64, targetDuration, minClipDuration float64, rng *rand.Rand) []types.DistributedClip {
	if len(clips) == 0 || len(rhythmPoints) == 0 {
		return nil
	}
	if targetDuration <= 0 {
		targetDuration = rhythmPoints[len(rhythmPoints)-1]
	}

	points := filterPoints(rhythmPoints, minClipDuration)
	if len(points) < 3 {
		log.Warn().
			Int("points", len(points)).
			Msg("too few rhythm points after spacing filter, using even distribution")
		return Even(clips, targetDuration, minClipDuration, rng)
	}

	pool := extendPool(clips, targetDuration, rng)

	out := make([]types.DistributedClip, 0, len(points)-1)
	next := 0
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		slot := end - start
		if slot < minClipDuration {
			continue
		}

		clip := pool[next%len(pool)]
		next++

		if clip.Duration > slot {
			// Pick a random sub-interval, but only when there is real slack.
			// Near-zero slack would produce essentially the same cut every
			// time while still paying for the randomness.
			slack := clip.Duration - slot
			offset := 0.0
			if slack > 1.0 {
				offset = rng.Float64() * slack
			}
			out = append(out, types.DistributedClip{
				Clip:        clip,
				SourceStart: offset,
				SourceEnd:   offset + slot,
				OutputStart: start,
				OutputEnd:   end,
			})
		} else {
			// Clip is shorter than the interval: use it whole, centered.
			padding := (slot - clip.Duration) / 2
			out = append(out, types.DistributedClip{
				Clip:        clip,
				SourceStart: 0,
				SourceEnd:   clip.Duration,
				OutputStart: start + padding,
				OutputEnd:   start + padding + clip.Duration,
			})
		}

		if end >= targetDuration {
			break
		}
	}

	if len(out) == 0 {
		log.Warn().Msg("no intervals produced from rhythm points, using even distribution")
		return Even(pool, targetDuration, minClipDuration, rng)
	}
	return out
}

// filterPoints greedily keeps a point only if it is at least minGap past the
// last kept point. The first point is always kept.
func filterPoints(points []float64, minGap float64) []float64 {
	if len(points) == 0 {
		return nil
	}
	filtered := make([]float64, 0, len(points))
	filtered = append(filtered, points[0])
	for _, p := range points[1:] {
		if p-filtered[len(filtered)-1] >= minGap {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
