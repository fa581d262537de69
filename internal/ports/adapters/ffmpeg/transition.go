package ffmpeg

import (
	"context"
	"fmt"
)

// Transition kinds. Unknown kinds render as a fade.
const (
	TransitionFade     = "fade"
	TransitionDissolve = "dissolve"
	TransitionWipe     = "wipe"
	TransitionSlide    = "slide"
)

// Transition merges aPath and bPath into outPath with the named effect. The
// transition duration is clamped to half the first clip when it exceeds its
// length. The first input's audio is carried over when present.
func (a *Adapter) Transition(ctx context.Context, aPath, bPath, outPath, kind string, duration float64) error {
	info, err := a.Probe(ctx, aPath)
	if err != nil {
		return fmt.Errorf("probe transition input: %w", err)
	}
	aDur := info.Duration
	if duration > aDur {
		duration = aDur / 2
		a.log.Warn().
			Str("kind", kind).
			Float64("duration_sec", duration).
			Msg("transition longer than first clip, clamping")
	}

	filter := transitionFilter(kind, aDur, duration)

	args := []string{
		"-y",
		"-i", aPath,
		"-i", bPath,
		"-filter_complex", filter,
		"-map", "[outv]",
	}
	if info.HasAudioStream() {
		args = append(args, "-map", "0:a", "-c:a", "aac")
	}
	args = append(args, "-c:v", "libx264", outPath)

	return a.run(ctx, "transition "+kind, outPath, args...)
}

func transitionFilter(kind string, aDur, d float64) string {
	fadeStart := aDur - d
	switch kind {
	case TransitionDissolve:
		// First clip fades out while the second fades in over it.
		return fmt.Sprintf(
			"[0:v]trim=0:%s,setpts=PTS-STARTPTS[v1];"+
				"[1:v]trim=0:%s,setpts=PTS-STARTPTS[v2];"+
				"[v1]fade=t=out:st=%s:d=%s[fadeout];"+
				"[v2]fade=t=in:st=0:d=%s[fadein];"+
				"[fadeout][fadein]overlay[outv]",
			secs(aDur), secs(d), secs(fadeStart), secs(d), secs(d))
	case TransitionWipe:
		// Left-to-right wipe during the last d seconds of the first clip.
		return fmt.Sprintf(
			"[0:v][1:v]blend=all_expr='if(gte(X,(W*T/%s)),B,A)'"+
				":enable='between(t,%s,%s)'[outv]",
			secs(d), secs(fadeStart), secs(aDur))
	case TransitionSlide:
		// Second clip slides in from the right edge.
		return fmt.Sprintf(
			"[1:v]setpts=PTS-STARTPTS+%s/TB[v1];"+
				"[0:v][v1]overlay=x='W-W*min(1,max(0,(t-%s)/%s))':shortest=1[outv]",
			secs(fadeStart), secs(fadeStart), secs(d))
	default:
		// Plain fade: first clip fades to black, second fades in after it.
		return fmt.Sprintf(
			"[0:v]fade=t=out:st=%s:d=%s[fadeout];"+
				"[1:v]fade=t=in:st=0:d=%s[fadein];"+
				"[fadeout][fadein]concat=n=2:v=1:a=0[outv]",
			secs(fadeStart), secs(d), secs(d))
	}
}
