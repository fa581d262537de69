package distribute

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/beatcut/internal/types"
)

func testClips(durations ...float64) []types.ClipDescriptor {
	clips := make([]types.ClipDescriptor, len(durations))
	for i, d := range durations {
		clips[i] = types.ClipDescriptor{Index: i, Path: "clip.mp4", Duration: d}
	}
	return clips
}

func testRand() *rand.Rand {
	return rngSeeded(1)
}

func rngSeeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// assertTimeline checks the shared strategy contract: ascending,
// non-overlapping output intervals within the target.
func assertTimeline(t *testing.T, out []types.DistributedClip, target float64) {
	t.Helper()
	const eps = 1e-9
	prevEnd := 0.0
	for i, dc := range out {
		assert.GreaterOrEqual(t, dc.OutputStart, prevEnd-eps, "clip %d overlaps previous", i)
		assert.Greater(t, dc.OutputEnd, dc.OutputStart, "clip %d has empty interval", i)
		assert.LessOrEqual(t, dc.OutputEnd, target+eps, "clip %d exceeds target", i)
		prevEnd = dc.OutputEnd
	}
}

func TestEven_EqualSlots(t *testing.T) {
	t.Parallel()

	out := Even(testClips(4, 4, 4), 6, 1, testRand())
	require.Len(t, out, 3)
	assertTimeline(t, out, 6)

	for i, dc := range out {
		assert.InDelta(t, float64(i)*2, dc.OutputStart, 1e-9)
		assert.InDelta(t, float64(i)*2+2, dc.OutputEnd, 1e-9)
		assert.InDelta(t, 2, dc.SourceEnd-dc.SourceStart, 1e-9)
	}
	assert.InDelta(t, 6, out[len(out)-1].OutputEnd, 1e-9)
}

func TestEven_CapsClipCount(t *testing.T) {
	t.Parallel()

	out := Even(testClips(1, 1, 1, 1, 1, 1, 1, 1, 1, 1), 4, 1, testRand())
	require.Len(t, out, 4)
	assertTimeline(t, out, 4)
	assert.InDelta(t, 4, out[len(out)-1].OutputEnd, 1e-9)
}

func TestEven_ShortClipUsedWhole(t *testing.T) {
	t.Parallel()

	// Slot is 5s but the first clip only has 3s; the shortfall is not made
	// up, the timeline just ends earlier.
	out := Even(testClips(3, 12), 10, 1, testRand())
	require.Len(t, out, 2)
	assertTimeline(t, out, 10)
	assert.InDelta(t, 3, out[0].SourceEnd-out[0].SourceStart, 1e-9)
	assert.InDelta(t, 5, out[1].SourceEnd-out[1].SourceStart, 1e-9)
}

func TestEven_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Even(nil, 10, 1, testRand()))
	assert.Nil(t, Even(testClips(3), 0, 1, testRand()))
}

func TestEven_NoSpeedChange(t *testing.T) {
	t.Parallel()

	out := Even(testClips(7, 2, 9, 4), 15, 1.5, testRand())
	require.NotEmpty(t, out)
	for _, dc := range out {
		assert.InDelta(t, dc.OutputEnd-dc.OutputStart, dc.SourceEnd-dc.SourceStart, 1e-9)
	}
}
