// Package usecase orchestrates the edit pipeline: probing source clips,
// building an edit plan under one of the distribution strategies, and
// executing that plan through the media operations port.
package usecase

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/avolkov/beatcut/internal/ports"
)

var (
	// ErrNoValidClips means no source clip survived analysis.
	ErrNoValidClips = errors.New("no valid clips found")
	// ErrNoDistributedClips means the plan carries an empty allocation.
	ErrNoDistributedClips = errors.New("edit plan has no distributed clips")
	// ErrTrimFailed means every per-clip trim failed.
	ErrTrimFailed = errors.New("all clip trims failed")
	// ErrAudioMux means the audio track could not be muxed onto the video.
	ErrAudioMux = errors.New("audio mux failed")
	// ErrInvalidOutput means the final artifact failed validation.
	ErrInvalidOutput = errors.New("output failed validation")
)

type Deps struct {
	Media ports.MediaOps
	Audio ports.AudioAnalyzer
}

type Usecase struct {
	d   Deps
	log zerolog.Logger
	rng *rand.Rand
}

func New(d Deps, logger zerolog.Logger) *Usecase {
	return &Usecase{
		d:   d,
		log: logger,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}
