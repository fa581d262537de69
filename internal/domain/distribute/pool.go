package distribute

import (
	"math/rand"

	"github.com/avolkov/beatcut/internal/types"
)

func totalDuration(clips []types.ClipDescriptor) float64 {
	var total float64
	for _, c := range clips {
		total += c.Duration
	}
	return total
}

// extendPool repeats the candidate list until its total duration exceeds
// target. Each repetition is freshly shuffled so the output does not cycle
// through a visibly repeating sequence.
func extendPool(clips []types.ClipDescriptor, target float64, rng *rand.Rand) []types.ClipDescriptor {
	total := totalDuration(clips)
	if total <= 0 || total >= target {
		return clips
	}

	repeat := int(target/total) + 1
	extended := make([]types.ClipDescriptor, 0, repeat*len(clips))
	for i := 0; i < repeat; i++ {
		shuffled := append([]types.ClipDescriptor(nil), clips...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		extended = append(extended, shuffled...)
	}
	return extended
}

// sample returns a uniform random subset of n clips, order randomized.
func sample(clips []types.ClipDescriptor, n int, rng *rand.Rand) []types.ClipDescriptor {
	idx := rng.Perm(len(clips))[:n]
	out := make([]types.ClipDescriptor, n)
	for i, j := range idx {
		out[i] = clips[j]
	}
	return out
}
