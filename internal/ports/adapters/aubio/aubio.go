// Package aubio implements the audio analysis port on top of the aubio CLI
// (beat and onset tracking) and ffmpeg (loudness measurement).
package aubio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avolkov/beatcut/internal/types"
)

// minPointGap is the floor between two rhythm points; beats and onsets closer
// than this are musically the same cut point.
const minPointGap = 0.1

type Adapter struct {
	aubio   string
	ffmpeg  string
	ffprobe string
	log     zerolog.Logger
}

func New(aubioPath, ffmpegPath, ffprobePath string, logger zerolog.Logger) *Adapter {
	if aubioPath == "" {
		aubioPath = "aubio"
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{
		aubio:   aubioPath,
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		log:     logger.With().Str("component", "aubio").Logger(),
	}
}

func (a *Adapter) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w\n%s", err, string(b))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return sec, nil
}

// RhythmPoints merges beat and onset timestamps into one ascending,
// deduplicated sequence.
func (a *Adapter) RhythmPoints(ctx context.Context, path string) ([]float64, error) {
	beats, err := a.timestamps(ctx, "beat", path)
	if err != nil {
		return nil, err
	}
	onsets, err := a.timestamps(ctx, "onset", path)
	if err != nil {
		return nil, err
	}

	combined := append(beats, onsets...)
	sort.Float64s(combined)

	points := make([]float64, 0, len(combined))
	for _, p := range combined {
		if len(points) == 0 || p-points[len(points)-1] >= minPointGap {
			points = append(points, p)
		}
	}

	a.log.Info().
		Int("beats", len(beats)).
		Int("onsets", len(onsets)).
		Int("points", len(points)).
		Msg("rhythm points detected")
	return points, nil
}

// EnergySegments splits the track into count equal intervals and measures the
// mean loudness and beat rate of each. A loudness measurement failure for one
// interval leaves its energy at zero and is not fatal.
func (a *Adapter) EnergySegments(ctx context.Context, path string, count int) ([]types.EnergySegment, error) {
	if count <= 0 {
		return nil, fmt.Errorf("segment count must be positive, got %d", count)
	}
	duration, err := a.Duration(ctx, path)
	if err != nil {
		return nil, err
	}
	beats, err := a.timestamps(ctx, "beat", path)
	if err != nil {
		return nil, err
	}

	segDur := duration / float64(count)
	segments := make([]types.EnergySegment, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * segDur
		seg := types.EnergySegment{
			Index:    i,
			Start:    start,
			End:      start + segDur,
			Duration: segDur,
			Tempo:    beatRate(beats, start, start+segDur),
		}
		energy, err := a.meanEnergy(ctx, path, start, segDur)
		if err != nil {
			a.log.Warn().Err(err).Int("segment", i).Msg("loudness measurement failed")
		} else {
			seg.Energy = energy
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// timestamps runs an aubio subcommand that prints one timestamp per line.
func (a *Adapter) timestamps(ctx context.Context, sub, path string) ([]float64, error) {
	cmd := exec.CommandContext(ctx, a.aubio, sub, path)
	b, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("aubio %s: %w", sub, err)
	}

	var out []float64
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

var meanVolumeRe = regexp.MustCompile(`mean_volume:\s*(-?[0-9.]+)\s*dB`)

// meanEnergy measures the interval's mean volume with ffmpeg volumedetect and
// converts the dB value to a linear non-negative scalar.
func (a *Adapter) meanEnergy(ctx context.Context, path string, start, dur float64) (float64, error) {
	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-ss", strconv.FormatFloat(start, 'f', 3, 64),
		"-t", strconv.FormatFloat(dur, 'f', 3, 64),
		"-i", path,
		"-af", "volumedetect",
		"-f", "null", "-",
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffmpeg volumedetect: %w\n%s", err, string(b))
	}
	m := meanVolumeRe.FindSubmatch(b)
	if m == nil {
		return 0, fmt.Errorf("no mean_volume in volumedetect output")
	}
	db, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, err
	}
	return math.Pow(10, db/20), nil
}

// beatRate estimates beats per minute from the beats falling inside
// [start, end).
func beatRate(beats []float64, start, end float64) float64 {
	if end <= start {
		return 0
	}
	n := 0
	for _, b := range beats {
		if b >= start && b < end {
			n++
		}
	}
	return float64(n) * 60 / (end - start)
}
