package aubio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatRate(t *testing.T) {
	t.Parallel()

	beats := []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0}

	// 4 beats in [0, 2) over 2 seconds = 120 bpm.
	assert.InDelta(t, 120, beatRate(beats, 0, 2), 1e-9)
	// segment end is exclusive
	assert.InDelta(t, 60, beatRate(beats, 2, 3), 1e-9)
	assert.Zero(t, beatRate(beats, 10, 12))
	assert.Zero(t, beatRate(beats, 2, 2))
	assert.Zero(t, beatRate(nil, 0, 2))
}

func TestMeanVolumeParsing(t *testing.T) {
	t.Parallel()

	out := []byte(`[Parsed_volumedetect_0 @ 0x55] n_samples: 441000
[Parsed_volumedetect_0 @ 0x55] mean_volume: -20.0 dB
[Parsed_volumedetect_0 @ 0x55] max_volume: -4.5 dB`)

	m := meanVolumeRe.FindSubmatch(out)
	if assert.NotNil(t, m) {
		assert.Equal(t, "-20.0", string(m[1]))
	}

	assert.Nil(t, meanVolumeRe.FindSubmatch([]byte("no volume here")))
}
