package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfiles(t *testing.T) {
	p := DefaultProfiles()
	require.NoError(t, p.Validate())

	assert.Equal(t, float32(8), p.BottomBar.DragThreshold)
	assert.Equal(t, float32(6), p.TabGroup.DragThreshold)
	assert.Equal(t, DefaultConfig(), p.TabGroup)
	assert.Greater(t, p.BottomBar.Motion.CornerRadius, p.TabGroup.Motion.CornerRadius)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.DragThreshold = 0 }},
		{"negative margin", func(c *Config) { c.Motion.EdgeMargin = -1 }},
		{"zero snap velocity", func(c *Config) { c.Motion.SnapVelocity = 0 }},
		{"flick below snap", func(c *Config) { c.Motion.FlickVelocity = c.Motion.SnapVelocity / 2 }},
		{"shrinking pick-up", func(c *Config) { c.Motion.PickUpScale = 0.9 }},
		{"max stretch below one", func(c *Config) { c.Motion.MaxStretch = 0.5 }},
		{"zero settle frequency", func(c *Config) { c.Motion.SettleFrequency = 0 }},
		{"over-damped jump", func(c *Config) { c.Motion.JumpDamping = 1.5 }},
		{"min damping above damping", func(c *Config) { c.Motion.MinJumpDamping = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	p, err := LoadProfiles("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfiles(), p)
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tab_group:
  drag_threshold: 10
  motion:
    snap_velocity: 1.5
bottom_bar:
  motion:
    corner_radius: 20
`)

	p, err := LoadProfiles(path)
	require.NoError(t, err)

	want := DefaultProfiles()
	want.TabGroup.DragThreshold = 10
	want.TabGroup.Motion.SnapVelocity = 1.5
	want.BottomBar.Motion.CornerRadius = 20
	assert.Equal(t, want, p)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "tab_group:\n  drag_threshold: 10\n")
	t.Setenv("SEGMENT_TAB_GROUP_DRAG_THRESHOLD", "12")
	t.Setenv("SEGMENT_BOTTOM_BAR_MOTION_JUMP_FREQUENCY", "9")

	p, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, float32(12), p.TabGroup.DragThreshold)
	assert.Equal(t, 9.0, p.BottomBar.Motion.JumpFrequency)
}

func TestLoader_InvalidValues(t *testing.T) {
	path := writeConfig(t, "bottom_bar:\n  drag_threshold: -2\n")

	_, err := LoadProfiles(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "bottom_bar")
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoader_WatchWithoutFile(t *testing.T) {
	l, err := NewLoader("")
	require.NoError(t, err)

	called := false
	l.Watch(func(Profiles, error) { called = true })
	assert.False(t, called)
}
