package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mp4")
	audio := filepath.Join(dir, "track.mp3")
	writeFile(t, clip)
	writeFile(t, audio)

	base := Config{
		ClipPaths:       []string{clip},
		AudioPath:       audio,
		MinClipDuration: 2,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{
			name:    "no clips",
			mutate:  func(c *Config) { c.ClipPaths = nil },
			wantErr: "no input clips",
		},
		{
			name:    "missing clip",
			mutate:  func(c *Config) { c.ClipPaths = []string{filepath.Join(dir, "nope.mp4")} },
			wantErr: "stat clip",
		},
		{
			name:    "no audio",
			mutate:  func(c *Config) { c.AudioPath = "" },
			wantErr: "audio track is required",
		},
		{
			name:    "missing audio",
			mutate:  func(c *Config) { c.AudioPath = filepath.Join(dir, "nope.mp3") },
			wantErr: "stat audio",
		},
		{
			name:    "bad min clip",
			mutate:  func(c *Config) { c.MinClipDuration = 0 },
			wantErr: "min clip duration",
		},
		{
			name: "transition without duration",
			mutate: func(c *Config) {
				c.TransitionType = "fade"
				c.TransitionDuration = 0
			},
			wantErr: "transition duration",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBuildOutputPath(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	p := buildOutputPath("out", "/music/My Track (final).mp3", now)

	assert.Equal(t, "out", filepath.Dir(p))
	base := filepath.Base(p)
	assert.True(t, strings.HasPrefix(base, "my-track-final-20260314-092653Z-"), base)
	assert.True(t, strings.HasSuffix(base, ".mp4"), base)
}

func TestBuildOutputPath_EmptyName(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	p := buildOutputPath("out", "/music/???.mp3", now)
	assert.True(t, strings.HasPrefix(filepath.Base(p), "edit-"), p)
}

func TestNormalizePathSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"My Track", "my-track"},
		{"  Sommer   2025! ", "sommer-2025"},
		{"ÄÖÜ-mix", "äöü-mix"},
		{"___", ""},
		{"already-clean", "already-clean"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, normalizePathSegment(tc.in), "input %q", tc.in)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}
