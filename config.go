package segment

import (
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g.
// SEGMENT_TAB_GROUP_DRAG_THRESHOLD=10.
const EnvPrefix = "SEGMENT"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid selector config")

// Config tunes one selector instance.
type Config struct {
	// DragThreshold is the distance in pixels from the press origin that
	// turns a press into a drag. Below it a release is a plain click.
	DragThreshold float32      `mapstructure:"drag_threshold" yaml:"drag_threshold"`
	Motion        MotionConfig `mapstructure:"motion" yaml:"motion"`
}

// DefaultConfig returns the in-content tab group tuning.
func DefaultConfig() Config {
	return TabGroupConfig()
}

// TabGroupConfig tunes the in-content tab group: short options, tight
// threshold, snappy settle.
func TabGroupConfig() Config {
	return Config{
		DragThreshold: 6,
		Motion:        DefaultMotionConfig(),
	}
}

// BottomBarConfig tunes the bottom navigation bar: wide thumb targets, a
// slightly larger threshold to absorb thumb jitter, and a rounder, softer
// indicator.
func BottomBarConfig() Config {
	m := DefaultMotionConfig()
	m.EdgeMargin = 6
	m.PickUpScale = 1.18
	m.CornerRadius = 16
	m.DragRadius = 24
	m.SettleFrequency = 12
	m.JumpFrequency = 10
	return Config{
		DragThreshold: 8,
		Motion:        m,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	m := c.Motion
	switch {
	case c.DragThreshold <= 0:
		return errors.Wrapf(ErrInvalidConfig, "drag_threshold must be positive, got %v", c.DragThreshold)
	case m.EdgeMargin < 0:
		return errors.Wrapf(ErrInvalidConfig, "motion.edge_margin must not be negative, got %v", m.EdgeMargin)
	case m.SnapVelocity <= 0:
		return errors.Wrapf(ErrInvalidConfig, "motion.snap_velocity must be positive, got %v", m.SnapVelocity)
	case m.FlickVelocity < m.SnapVelocity:
		return errors.Wrapf(ErrInvalidConfig, "motion.flick_velocity %v is below snap_velocity %v", m.FlickVelocity, m.SnapVelocity)
	case m.PickUpScale < 1:
		return errors.Wrapf(ErrInvalidConfig, "motion.pickup_scale must be at least 1, got %v", m.PickUpScale)
	case m.MaxStretch < 1:
		return errors.Wrapf(ErrInvalidConfig, "motion.max_stretch must be at least 1, got %v", m.MaxStretch)
	case m.FollowFrequency <= 0 || m.SettleFrequency <= 0 || m.JumpFrequency <= 0 || m.MinJumpFrequency <= 0:
		return errors.Wrap(ErrInvalidConfig, "motion frequencies must be positive")
	case m.JumpDamping <= 0 || m.JumpDamping > 1 || m.MinJumpDamping <= 0 || m.MinJumpDamping > m.JumpDamping:
		return errors.Wrapf(ErrInvalidConfig, "motion damping must satisfy 0 < min_jump_damping <= jump_damping <= 1, got %v and %v",
			m.MinJumpDamping, m.JumpDamping)
	}
	return nil
}

// Profiles holds the config of both selector instances.
type Profiles struct {
	BottomBar Config `mapstructure:"bottom_bar" yaml:"bottom_bar"`
	TabGroup  Config `mapstructure:"tab_group" yaml:"tab_group"`
}

// DefaultProfiles returns the built-in tuning for both instances.
func DefaultProfiles() Profiles {
	return Profiles{BottomBar: BottomBarConfig(), TabGroup: TabGroupConfig()}
}

// Validate validates both profiles.
func (p Profiles) Validate() error {
	if err := p.BottomBar.Validate(); err != nil {
		return errors.Wrap(err, "bottom_bar")
	}
	if err := p.TabGroup.Validate(); err != nil {
		return errors.Wrap(err, "tab_group")
	}
	return nil
}

// Loader reads Profiles from defaults, an optional YAML file, and
// SEGMENT_* environment variables, in increasing precedence.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader prepares a loader. path may be empty.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := setDefaults(v, DefaultProfiles()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	}
	return &Loader{v: v, path: path}, nil
}

// Load reads the file (if any) and returns validated profiles.
func (l *Loader) Load() (Profiles, error) {
	if l.path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return Profiles{}, errors.Wrapf(err, "read config %s", l.path)
		}
	}

	var p Profiles
	if err := l.v.Unmarshal(&p); err != nil {
		return Profiles{}, errors.Wrap(err, "decode config")
	}
	if err := p.Validate(); err != nil {
		return Profiles{}, err
	}
	return p, nil
}

// Watch calls fn with freshly loaded profiles whenever the config file is
// written. fn runs on viper's watcher goroutine. No-op without a file.
func (l *Loader) Watch(fn func(Profiles, error)) {
	if l.path == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(l.Load())
	})
	l.v.WatchConfig()
}

// LoadProfiles is NewLoader followed by Load.
func LoadProfiles(path string) (Profiles, error) {
	l, err := NewLoader(path)
	if err != nil {
		return Profiles{}, err
	}
	return l.Load()
}

// setDefaults registers every leaf of p as a viper default so that file
// reloads and env lookups both see the full key set.
func setDefaults(v *viper.Viper, p Profiles) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "encode defaults")
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return errors.Wrap(err, "decode defaults")
	}
	setDefaultTree(v, "", tree)
	return nil
}

func setDefaultTree(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaultTree(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}
