package ffmpeg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrameRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"25", 25},
		{"0/0", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, parseFrameRate(tc.in), 1e-9, "input %q", tc.in)
	}
}

func TestSecs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2.500", secs(2.5))
	assert.Equal(t, "0.000", secs(0))
	assert.Equal(t, "10.125", secs(10.125))
}

func TestTransitionFilter(t *testing.T) {
	t.Parallel()

	t.Run("fade is the default", func(t *testing.T) {
		f := transitionFilter("unknown", 4, 0.5)
		assert.Contains(t, f, "fade=t=out:st=3.500:d=0.500")
		assert.Contains(t, f, "fade=t=in:st=0:d=0.500")
		assert.Contains(t, f, "concat=n=2:v=1:a=0[outv]")
	})

	t.Run("dissolve overlays the fades", func(t *testing.T) {
		f := transitionFilter(TransitionDissolve, 4, 1)
		assert.Contains(t, f, "trim=0:4.000")
		assert.Contains(t, f, "fade=t=out:st=3.000:d=1.000")
		assert.Contains(t, f, "[fadeout][fadein]overlay[outv]")
	})

	t.Run("wipe quotes its expressions", func(t *testing.T) {
		f := transitionFilter(TransitionWipe, 4, 1)
		assert.Contains(t, f, "blend=all_expr='if(gte(X,(W*T/1.000)),B,A)'")
		assert.Contains(t, f, "enable='between(t,3.000,4.000)'")
	})

	t.Run("slide shifts the second clip", func(t *testing.T) {
		f := transitionFilter(TransitionSlide, 4, 1)
		assert.Contains(t, f, "setpts=PTS-STARTPTS+3.000/TB")
		assert.Contains(t, f, "overlay=x='W-W*min(1,max(0,(t-3.000)/1.000))'")
	})

	// Filter expressions with commas must be single-quoted or ffmpeg splits
	// them at the filter-chain level.
	for _, kind := range []string{TransitionFade, TransitionDissolve, TransitionWipe, TransitionSlide} {
		f := transitionFilter(kind, 4, 0.5)
		assert.True(t, strings.HasSuffix(f, "[outv]"), "%s filter must label [outv]: %s", kind, f)
	}
}
