// SPDX-License-Identifier: EPL-2.0

package vhs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSampleRate      = errors.New("sample rate must be positive")
	ErrInvalidCutoff          = errors.New("invalid cutoff frequency")
	ErrInvalidChannels        = errors.New("channel count must be 1 or 2")
	ErrInvalidPasses          = errors.New("pass count must be positive")
	ErrInvalidTapeSpeed       = errors.New("unknown tape speed")
	ErrInvalidPreemphasisMode = errors.New("unknown preemphasis mode")
	ErrNotReady               = errors.New("filter bank is not initialized")
	ErrShortBuffer            = errors.New("buffer shorter than frames * channels")
)

// ConfigError reports a configuration value that the filter chain refuses
// to run with. Err is one of the sentinel errors above.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("vhs: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func configError(field string, value any, err error) error {
	return &ConfigError{Field: field, Value: value, Err: err}
}
