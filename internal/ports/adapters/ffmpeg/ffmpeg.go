// Package ffmpeg implements the media operations port by shelling out to
// ffmpeg and ffprobe.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avolkov/beatcut/internal/types"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
	log     zerolog.Logger
}

func New(ffmpegPath, ffprobePath string, logger zerolog.Logger) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{
		ffmpeg:  ffmpegPath,
		ffprobe: ffprobePath,
		log:     logger.With().Str("component", "ffmpeg").Logger(),
	}
}

func (a *Adapter) Probe(ctx context.Context, path string) (types.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.MediaInfo{}, fmt.Errorf("ffprobe %s: %w\n%s", path, err, string(b))
	}

	var pr probeResult
	if err := json.Unmarshal(b, &pr); err != nil {
		return types.MediaInfo{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	info := types.MediaInfo{}
	info.Duration, _ = strconv.ParseFloat(pr.Format.Duration, 64)
	info.Size, _ = strconv.ParseInt(pr.Format.Size, 10, 64)
	info.BitRate, _ = strconv.ParseInt(pr.Format.BitRate, 10, 64)
	for _, s := range pr.Streams {
		info.Streams = append(info.Streams, types.StreamInfo{
			CodecType: s.CodecType,
			Codec:     s.CodecName,
			Width:     s.Width,
			Height:    s.Height,
			FPS:       parseFrameRate(s.AvgFrameRate),
			Channels:  s.Channels,
		})
	}
	return info, nil
}

// Trim extracts [start, end] into outPath, re-encoding. Stream copy is not
// offered because sub-second cuts need keyframe-independent boundaries.
func (a *Adapter) Trim(ctx context.Context, inPath, outPath string, start, end float64) error {
	info, err := a.Probe(ctx, inPath)
	if err != nil {
		return fmt.Errorf("probe trim input: %w", err)
	}
	if start >= info.Duration {
		return fmt.Errorf("trim start %.3fs exceeds duration %.3fs of %s", start, info.Duration, inPath)
	}
	if end > info.Duration {
		a.log.Warn().
			Str("input", inPath).
			Float64("end_sec", end).
			Float64("duration_sec", info.Duration).
			Msg("trim end exceeds clip duration, clamping")
		end = info.Duration
	}

	return a.run(ctx, "trim", outPath,
		"-y",
		"-i", inPath,
		"-ss", secs(start),
		"-t", secs(end-start),
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "18",
		"-c:a", "aac",
		outPath,
	)
}

// Concat joins inputs with the concat demuxer and stream copy. Inputs are
// expected to share codec parameters, which holds for files this adapter
// produced itself.
func (a *Adapter) Concat(ctx context.Context, inPaths []string, outPath string) error {
	if len(inPaths) == 0 {
		return fmt.Errorf("concat: no input files")
	}

	listPath := outPath + ".txt"
	var sb strings.Builder
	for _, p := range inPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("concat list: %w", err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	return a.run(ctx, "concat", outPath,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outPath,
	)
}

// MuxAudio overlays audioPath onto videoPath, trimming the audio to
// durationCap. The video stream passes through untouched; the audio is
// re-encoded to AAC at reduced volume so it sits under any clip audio.
func (a *Adapter) MuxAudio(ctx context.Context, videoPath, audioPath, outPath string, durationCap float64) error {
	filter := fmt.Sprintf("[1:a]atrim=0:%s,asetpts=PTS-STARTPTS,volume=0.8[a]", secs(durationCap))
	return a.run(ctx, "mux audio", outPath,
		"-y",
		"-i", videoPath,
		"-i", audioPath,
		"-filter_complex", filter,
		"-map", "0:v",
		"-map", "[a]",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outPath,
	)
}

// run executes ffmpeg and removes outPath on failure so callers never see a
// partial artifact.
func (a *Adapter) run(ctx context.Context, op, outPath string, args ...string) error {
	a.log.Debug().Str("op", op).Str("output", outPath).Msg("running ffmpeg")
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(outPath)
		return fmt.Errorf("ffmpeg %s: %w\n%s", op, err, string(b))
	}
	return nil
}

func secs(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// parseFrameRate converts an ffprobe rational like "30000/1001" to fps.
func parseFrameRate(r string) float64 {
	num, den, ok := strings.Cut(r, "/")
	if !ok {
		f, _ := strconv.ParseFloat(r, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// probeResult matches ffprobe JSON output.
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		Channels     int    `json:"channels"`
	} `json:"streams"`
}
