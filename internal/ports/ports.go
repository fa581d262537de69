package ports

import (
	"context"

	"github.com/avolkov/beatcut/internal/types"
)

// MediaOps is the media operations service: everything that touches codecs.
// Implementations write their result to outPath and must not leave a partial
// file behind on error.
type MediaOps interface {
	Probe(ctx context.Context, path string) (types.MediaInfo, error)
	Trim(ctx context.Context, inPath, outPath string, start, end float64) error
	Concat(ctx context.Context, inPaths []string, outPath string) error
	Transition(ctx context.Context, aPath, bPath, outPath, kind string, duration float64) error
	MuxAudio(ctx context.Context, videoPath, audioPath, outPath string, durationCap float64) error
}

// AudioAnalyzer is the audio analysis service. RhythmPoints returns an
// ascending, deduplicated timestamp sequence; EnergySegments returns exactly
// count consecutive equal-length segments.
type AudioAnalyzer interface {
	Duration(ctx context.Context, path string) (float64, error)
	RhythmPoints(ctx context.Context, path string) ([]float64, error)
	EnergySegments(ctx context.Context, path string, count int) ([]types.EnergySegment, error)
}
