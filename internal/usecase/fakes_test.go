package usecase

import (
	"context"
	"os"
	"sync"

	"github.com/avolkov/beatcut/internal/types"
)

// fakeMedia implements ports.MediaOps. Each operation uses the override when
// set, otherwise succeeds and writes a small real file so directory-cleanup
// behavior is exercised for real.
type fakeMedia struct {
	mu sync.Mutex

	probeFn      func(path string) (types.MediaInfo, error)
	trimFn       func(in, out string, start, end float64) error
	concatFn     func(in []string, out string) error
	transitionFn func(a, b, out, kind string, d float64) error
	muxFn        func(video, audio, out string, limit float64) error

	trimCalls       int
	concatCalls     int
	concatInputs    [][]string
	transitionCalls int
	muxCalls        int
}

func validInfo() types.MediaInfo {
	return types.MediaInfo{
		Duration: 4,
		Size:     1024,
		Streams: []types.StreamInfo{
			{CodecType: "video", Codec: "h264", Width: 1280, Height: 720, FPS: 30},
			{CodecType: "audio", Codec: "aac", Channels: 2},
		},
	}
}

func (f *fakeMedia) Probe(_ context.Context, path string) (types.MediaInfo, error) {
	f.mu.Lock()
	fn := f.probeFn
	f.mu.Unlock()
	if fn != nil {
		return fn(path)
	}
	return validInfo(), nil
}

func (f *fakeMedia) Trim(_ context.Context, in, out string, start, end float64) error {
	f.mu.Lock()
	f.trimCalls++
	fn := f.trimFn
	f.mu.Unlock()
	if fn != nil {
		return fn(in, out, start, end)
	}
	return os.WriteFile(out, []byte("trimmed"), 0o644)
}

func (f *fakeMedia) Concat(_ context.Context, in []string, out string) error {
	f.mu.Lock()
	f.concatCalls++
	f.concatInputs = append(f.concatInputs, append([]string(nil), in...))
	fn := f.concatFn
	f.mu.Unlock()
	if fn != nil {
		return fn(in, out)
	}
	return os.WriteFile(out, []byte("concat"), 0o644)
}

func (f *fakeMedia) Transition(_ context.Context, a, b, out, kind string, d float64) error {
	f.mu.Lock()
	f.transitionCalls++
	fn := f.transitionFn
	f.mu.Unlock()
	if fn != nil {
		return fn(a, b, out, kind, d)
	}
	return os.WriteFile(out, []byte("transition"), 0o644)
}

func (f *fakeMedia) MuxAudio(_ context.Context, video, audio, out string, limit float64) error {
	f.mu.Lock()
	f.muxCalls++
	fn := f.muxFn
	f.mu.Unlock()
	if fn != nil {
		return fn(video, audio, out, limit)
	}
	return os.WriteFile(out, []byte("muxed"), 0o644)
}

// fakeAudio implements ports.AudioAnalyzer with canned analysis results.
type fakeAudio struct {
	duration float64
	durErr   error
	points   []float64
	segments []types.EnergySegment
}

func (f fakeAudio) Duration(_ context.Context, _ string) (float64, error) {
	if f.durErr != nil {
		return 0, f.durErr
	}
	return f.duration, nil
}

func (f fakeAudio) RhythmPoints(_ context.Context, _ string) ([]float64, error) {
	return f.points, nil
}

func (f fakeAudio) EnergySegments(_ context.Context, _ string, _ int) ([]types.EnergySegment, error) {
	return f.segments, nil
}
