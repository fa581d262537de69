package distribute

import (
	"math"
	"sort"

	"github.com/avolkov/beatcut/internal/types"
)

// ByEnergy pairs clips with audio segments so that lower-energy segments get
// shorter clips: both sequences are sorted ascending (clips by duration,
// segments by energy) and matched index for index, wrapping the clip list
// when segments outnumber clips. The result is re-sorted by segment start so
// the musical energy progression, not the pairing order, determines the final
// timeline.
func ByEnergy(clips []types.ClipDescriptor, segments []types.EnergySegment) []types.DistributedClip {
	if len(clips) == 0 || len(segments) == 0 {
		return nil
	}

	sortedClips := append([]types.ClipDescriptor(nil), clips...)
	sort.SliceStable(sortedClips, func(i, j int) bool {
		return sortedClips[i].Duration < sortedClips[j].Duration
	})

	sortedSegs := append([]types.EnergySegment(nil), segments...)
	sort.SliceStable(sortedSegs, func(i, j int) bool {
		return sortedSegs[i].Energy < sortedSegs[j].Energy
	})

	for len(sortedClips) < len(sortedSegs) {
		need := len(sortedSegs) - len(sortedClips)
		if need > len(sortedClips) {
			need = len(sortedClips)
		}
		sortedClips = append(sortedClips, sortedClips[:need]...)
	}

	out := make([]types.DistributedClip, 0, len(sortedSegs))
	for i, seg := range sortedSegs {
		clip := sortedClips[i%len(sortedClips)]
		used := math.Min(clip.Duration, seg.Duration)
		out = append(out, types.DistributedClip{
			Clip:        clip,
			SourceStart: 0,
			SourceEnd:   used,
			OutputStart: seg.Start,
			OutputEnd:   seg.Start + used,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OutputStart < out[j].OutputStart
	})
	return out
}
