// SPDX-License-Identifier: EPL-2.0

// Package config loads the vhsaudio settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ik5/vhsaudio/vhs"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel          = "info"
	DefaultSampleRate        = vhs.DefaultSampleRate
	DefaultHiFi              = true
	DefaultTapeSpeed         = "sp"
	DefaultPasses            = vhs.DefaultPasses
	DefaultBlockFrames       = 1024
	DefaultPreemphasis       = true
	DefaultPreemphasisCorner = vhs.DefaultPreemphasisCorner
	DefaultPreemphasisMode   = "cross-channel"
	DefaultFileName          = "vhsaudio.yaml"

	MinSampleRate  = 8000
	MaxSampleRate  = 192000
	MaxPasses      = 64
	MaxBlockFrames = 1 << 16
)

const (
	envPrefix     = "VHSAUDIO_"
	envLogLevel   = envPrefix + "LOG_LEVEL"
	envSampleRate = envPrefix + "SAMPLE_RATE"
	envHiFi       = envPrefix + "HIFI"
	envTapeSpeed  = envPrefix + "TAPE_SPEED"
	envPasses     = envPrefix + "PASSES"

	envPreemphasisMode = envPrefix + "PREEMPHASIS_MODE"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// PreemphasisConfig controls the treble boost around the limiter.
// Mode "per-channel" gives every channel its own emphasis filters instead
// of running all of them on each sample.
type PreemphasisConfig struct {
	Enabled  bool    `yaml:"enabled"`
	CornerHz float64 `yaml:"corner_hz"`
	Mode     string  `yaml:"mode"`
}

type envOverride struct {
	key     string
	value   string
	ignored bool
}

// Config is the full set of run settings.
type Config struct {
	LogLevel     string            `yaml:"log_level"`
	Input        string            `yaml:"input"`
	Output       string            `yaml:"output"`
	SampleRate   int               `yaml:"sample_rate"`
	HiFi         bool              `yaml:"hifi"`
	TapeSpeed    string            `yaml:"tape_speed"`
	LinearStereo bool              `yaml:"linear_stereo"`
	Passes       int               `yaml:"passes"`
	BlockFrames  int               `yaml:"block_frames"`
	Play         bool              `yaml:"play"`
	Preemphasis  PreemphasisConfig `yaml:"preemphasis"`

	envOverrides []envOverride
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		SampleRate:  DefaultSampleRate,
		HiFi:        DefaultHiFi,
		TapeSpeed:   DefaultTapeSpeed,
		Passes:      DefaultPasses,
		BlockFrames: DefaultBlockFrames,
		Preemphasis: PreemphasisConfig{
			Enabled:  DefaultPreemphasis,
			CornerHz: DefaultPreemphasisCorner,
			Mode:     DefaultPreemphasisMode,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path looks
// for DefaultFileName in the working directory and falls back to the
// defaults when it is absent. Environment overrides are applied last, then
// the result is validated.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.override(envLogLevel, func(v string) error {
		c.LogLevel = v
		return nil
	})
	c.override(envSampleRate, func(v string) error {
		rate, err := strconv.Atoi(v)
		if err == nil {
			c.SampleRate = rate
		}
		return err
	})
	c.override(envHiFi, func(v string) error {
		hifi, err := strconv.ParseBool(v)
		if err == nil {
			c.HiFi = hifi
		}
		return err
	})
	c.override(envTapeSpeed, func(v string) error {
		c.TapeSpeed = v
		return nil
	})
	c.override(envPasses, func(v string) error {
		passes, err := strconv.Atoi(v)
		if err == nil {
			c.Passes = passes
		}
		return err
	})
	c.override(envPreemphasisMode, func(v string) error {
		c.Preemphasis.Mode = v
		return nil
	})
}

// override applies the environment variable key, when set, and records
// the outcome for LogEnvOverrides. A value apply rejects leaves the
// setting unchanged.
func (c *Config) override(key string, apply func(string) error) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	err := apply(val)
	c.envOverrides = append(c.envOverrides, envOverride{key: key, value: val, ignored: err != nil})
}

// LogEnvOverrides reports the environment variables Load applied or
// ignored. Load runs before logging is configured, so callers emit these
// once it is.
func (c *Config) LogEnvOverrides(log *logrus.Entry) {
	for _, o := range c.envOverrides {
		entry := log.WithField(o.key, o.value)
		if o.ignored {
			entry.Warn("ignoring malformed environment value")
			continue
		}
		entry.Debug("override from environment")
	}
}

// Validate checks ranges and names. It does not touch the filesystem.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.SampleRate < MinSampleRate || c.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample_rate %d outside [%d, %d]", ErrInvalidConfig, c.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if _, err := vhs.ParseTapeSpeed(c.TapeSpeed); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Passes < 1 || c.Passes > MaxPasses {
		return fmt.Errorf("%w: passes %d outside [1, %d]", ErrInvalidConfig, c.Passes, MaxPasses)
	}
	if c.BlockFrames < 1 || c.BlockFrames > MaxBlockFrames {
		return fmt.Errorf("%w: block_frames %d outside [1, %d]", ErrInvalidConfig, c.BlockFrames, MaxBlockFrames)
	}
	if c.Preemphasis.Enabled && !(c.Preemphasis.CornerHz > 0) {
		return fmt.Errorf("%w: preemphasis.corner_hz must be positive", ErrInvalidConfig)
	}
	if _, err := vhs.ParsePreemphasisMode(c.Preemphasis.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// EmulationOptions resolves the deck preset and applies the explicit
// pass count and emphasis settings on top of it.
func (c *Config) EmulationOptions() (vhs.Options, error) {
	speed, err := vhs.ParseTapeSpeed(c.TapeSpeed)
	if err != nil {
		return vhs.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	mode, err := vhs.ParsePreemphasisMode(c.Preemphasis.Mode)
	if err != nil {
		return vhs.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := vhs.Resolve(c.HiFi, speed, c.LinearStereo).Options(c.SampleRate)
	opts.Passes = c.Passes
	opts.EnablePreemphasis = c.Preemphasis.Enabled
	opts.PreemphasisCornerHz = c.Preemphasis.CornerHz
	opts.PreemphasisMode = mode

	if err := opts.Validate(); err != nil {
		return vhs.Options{}, err
	}

	return opts, nil
}
