package usecase

import (
	"context"

	"github.com/avolkov/beatcut/internal/types"
)

// AnalyzeClips probes each clip reference into a descriptor. A probing
// failure drops that clip and is logged; the batch itself never fails, so the
// result may be shorter than the input. Callers must treat an empty result as
// ErrNoValidClips.
func (u *Usecase) AnalyzeClips(ctx context.Context, paths []string) []types.ClipDescriptor {
	out := make([]types.ClipDescriptor, 0, len(paths))
	for i, path := range paths {
		info, err := u.d.Media.Probe(ctx, path)
		if err != nil {
			u.log.Error().Err(err).Str("clip", path).Msg("clip analysis failed, dropping clip")
			continue
		}

		desc := types.ClipDescriptor{
			Index:    i,
			Path:     path,
			Duration: info.Duration,
			HasAudio: info.HasAudioStream(),
		}
		if vs, ok := info.FirstVideoStream(); ok {
			desc.Width = vs.Width
			desc.Height = vs.Height
			desc.FPS = vs.FPS
		}
		out = append(out, desc)
	}
	return out
}
