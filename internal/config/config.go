// Package config loads tool paths and editing defaults from an optional YAML
// file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	AubioPath   string `yaml:"aubio_path"`

	ScratchDir      string  `yaml:"scratch_dir"`
	MinClipDuration float64 `yaml:"min_clip_duration"`
	EnergySegments  int     `yaml:"energy_segments"`
	TrimWorkers     int     `yaml:"trim_workers"`
}

func Default() Config {
	return Config{
		FFmpegPath:      "ffmpeg",
		FFprobePath:     "ffprobe",
		AubioPath:       "aubio",
		MinClipDuration: 2.0,
		EnergySegments:  8,
		TrimWorkers:     2,
	}
}

// Load returns defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BEATCUT_FFMPEG"); v != "" {
		cfg.FFmpegPath = v
	}
	if v := os.Getenv("BEATCUT_FFPROBE"); v != "" {
		cfg.FFprobePath = v
	}
	if v := os.Getenv("BEATCUT_AUBIO"); v != "" {
		cfg.AubioPath = v
	}
	if v := os.Getenv("BEATCUT_SCRATCH_DIR"); v != "" {
		cfg.ScratchDir = v
	}
}
