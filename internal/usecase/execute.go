package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/avolkov/beatcut/internal/types"
)

type ExecOptions struct {
	OutputPath string

	// TransitionType selects the transition between adjacent clips; empty
	// means plain concatenation.
	TransitionType     string
	TransitionDuration float64

	// ScratchRoot is the parent for the per-execution scratch directory,
	// os.TempDir() when empty.
	ScratchRoot string

	// TrimWorkers bounds concurrent trim operations. Trimming one clip never
	// depends on another's result, so per-clip trims can run in parallel;
	// results are reassembled in plan order before folding.
	TrimWorkers int
}

// ExecutePlan runs one plan through trim, fold, mux and validation. Every
// scratch file created on the way, and the scratch directory itself once
// empty, is removed on all exit paths. A failed execution leaves no partial
// output behind and is not resumable; retries start from a fresh plan.
func (u *Usecase) ExecutePlan(ctx context.Context, plan types.EditPlan, opts ExecOptions) (types.ExecutionResult, error) {
	if len(plan.Distributed) == 0 {
		return types.ExecutionResult{}, ErrNoDistributedClips
	}

	root := opts.ScratchRoot
	if root == "" {
		root = os.TempDir()
	}
	// The uuid keys the directory to this execution alone, so concurrent
	// executions never share scratch space even for identical output paths.
	scratch := filepath.Join(root, "beatcut-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return types.ExecutionResult{}, fmt.Errorf("create scratch dir: %w", err)
	}

	var scratchFiles []string
	defer func() {
		u.cleanupScratch(scratch, scratchFiles)
	}()

	trimmed := u.trimClips(ctx, plan, scratch, opts.TrimWorkers)
	survivors := make([]string, 0, len(trimmed))
	for _, p := range trimmed {
		if p != "" {
			scratchFiles = append(scratchFiles, p)
			survivors = append(survivors, p)
		}
	}
	if len(survivors) == 0 {
		return types.ExecutionResult{}, fmt.Errorf("%w: %d clips attempted", ErrTrimFailed, len(plan.Distributed))
	}

	folded, foldFiles, err := u.fold(ctx, survivors, scratch, opts)
	scratchFiles = append(scratchFiles, foldFiles...)
	if err != nil {
		return types.ExecutionResult{}, err
	}

	if err := u.d.Media.MuxAudio(ctx, folded, plan.AudioPath, opts.OutputPath, plan.AudioDuration); err != nil {
		u.removeOutput(opts.OutputPath)
		return types.ExecutionResult{}, fmt.Errorf("%w: %v", ErrAudioMux, err)
	}

	info, err := u.d.Media.Probe(ctx, opts.OutputPath)
	if err != nil {
		u.removeOutput(opts.OutputPath)
		return types.ExecutionResult{}, fmt.Errorf("%w: probe output: %v", ErrInvalidOutput, err)
	}
	if info.Duration <= 0 || len(info.Streams) == 0 {
		u.removeOutput(opts.OutputPath)
		return types.ExecutionResult{}, fmt.Errorf("%w: zero duration or no decodable streams", ErrInvalidOutput)
	}

	u.log.Info().
		Str("output", opts.OutputPath).
		Float64("duration_sec", info.Duration).
		Int("clips", len(survivors)).
		Msg("edit plan executed")

	return types.ExecutionResult{
		OutputPath: opts.OutputPath,
		Duration:   info.Duration,
		SizeBytes:  info.Size,
		ClipCount:  len(survivors),
		Strategy:   plan.Strategy,
	}, nil
}

// trimClips extracts every distributed clip's source interval into a scratch
// file. Failures drop the clip; the returned slice keeps plan order with an
// empty string for every dropped clip.
func (u *Usecase) trimClips(ctx context.Context, plan types.EditPlan, scratch string, trimWorkers int) []string {
	workers := 1
	if trimWorkers > 0 {
		workers = trimWorkers
	}
	if workers > len(plan.Distributed) {
		workers = len(plan.Distributed)
	}

	trimmed := make([]string, len(plan.Distributed))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, dc := range plan.Distributed {
		wg.Add(1)
		go func(i int, dc types.DistributedClip) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			out := filepath.Join(scratch, fmt.Sprintf("clip_%d.mp4", i))
			if err := u.d.Media.Trim(ctx, dc.Clip.Path, out, dc.SourceStart, dc.SourceEnd); err != nil {
				u.log.Error().Err(err).Int("clip", i).Str("source", dc.Clip.Path).Msg("trim failed, dropping clip")
				return
			}
			info, err := u.d.Media.Probe(ctx, out)
			if err != nil || info.Duration <= 0 || len(info.Streams) == 0 {
				u.log.Error().Err(err).Int("clip", i).Msg("trimmed clip failed validation, dropping clip")
				os.Remove(out)
				return
			}
			trimmed[i] = out
		}(i, dc)
	}
	wg.Wait()
	return trimmed
}

// fold combines the trimmed clips into one continuous video. Without a
// transition this is a single concat pass. With one, clips are folded
// pairwise into a running current file; a failed transition falls back to
// concatenating that pair, and a pair that cannot be merged at all is
// skipped so the fold always makes forward progress.
func (u *Usecase) fold(ctx context.Context, clips []string, scratch string, opts ExecOptions) (string, []string, error) {
	var created []string

	if opts.TransitionType == "" {
		out := filepath.Join(scratch, "merged.mp4")
		created = append(created, out)
		if err := u.d.Media.Concat(ctx, clips, out); err != nil {
			return "", created, fmt.Errorf("concat clips: %w", err)
		}
		return out, created, nil
	}

	current := clips[0]
	for i := 1; i < len(clips); i++ {
		out := filepath.Join(scratch, fmt.Sprintf("merged_%d.mp4", i))
		created = append(created, out)

		err := u.d.Media.Transition(ctx, current, clips[i], out, opts.TransitionType, opts.TransitionDuration)
		if err != nil {
			u.log.Warn().Err(err).
				Int("pair", i).
				Str("kind", opts.TransitionType).
				Msg("transition failed, concatenating pair instead")
			err = u.d.Media.Concat(ctx, []string{current, clips[i]}, out)
		}
		if err != nil {
			u.log.Error().Err(err).Int("pair", i).Msg("pair merge failed, skipping clip")
			continue
		}
		current = out
	}
	return current, created, nil
}

func (u *Usecase) removeOutput(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		u.log.Warn().Err(err).Str("output", path).Msg("failed to remove partial output")
	}
}

// cleanupScratch removes every tracked scratch file and the directory itself
// once empty. Unconditional: runs on success and on every failure path.
func (u *Usecase) cleanupScratch(dir string, files []string) {
	for _, f := range files {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			u.log.Warn().Err(err).Str("file", f).Msg("failed to remove scratch file")
		}
	}
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) == 0 {
		if err := os.Remove(dir); err != nil {
			u.log.Warn().Err(err).Str("dir", dir).Msg("failed to remove scratch dir")
		}
	}
	u.log.Debug().Str("dir", dir).Int("files", len(files)).Msg("scratch cleaned up")
}
