// Package distribute maps probed source clips onto a target timeline. All
// strategies share the same contract: non-overlapping output intervals in
// ascending order, covering [0, targetDuration] as closely as the material
// allows. No speed change is ever applied; the used source length always
// matches the occupied output length (modulo centering padding).
package distribute

import (
	"math"
	"math/rand"

	"github.com/avolkov/beatcut/internal/types"
)

// Even lays clips back to back in equal slots of targetDuration/clipCount.
// When the pool is large enough that slots would drop below minClipDuration,
// a uniform random subset is used instead.
func Even(clips []types.ClipDescriptor, targetDuration, minClipDuration float64, rng *rand.Rand) []types.DistributedClip {
	if len(clips) == 0 || targetDuration <= 0 {
		return nil
	}

	pool := extendPool(clips, targetDuration, rng)

	count := len(pool)
	if minClipDuration > 0 && float64(count) > targetDuration/minClipDuration {
		count = int(targetDuration / minClipDuration)
		if count <= 0 {
			return nil
		}
		pool = sample(pool, count, rng)
	}

	slot := targetDuration / float64(count)

	out := make([]types.DistributedClip, 0, count)
	current := 0.0
	for _, clip := range pool {
		if current >= targetDuration {
			break
		}
		used := math.Min(clip.Duration, math.Min(slot, targetDuration-current))
		out = append(out, types.DistributedClip{
			Clip:        clip,
			SourceStart: 0,
			SourceEnd:   used,
			OutputStart: current,
			OutputEnd:   current + used,
		})
		current += used
	}
	return out
}
