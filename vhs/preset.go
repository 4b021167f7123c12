// SPDX-License-Identifier: EPL-2.0

package vhs

import (
	"fmt"
	"strings"
)

// TapeSpeed is the VHS recording speed. It only matters for the linear
// audio track; Hi-Fi audio sounds the same at every speed.
type TapeSpeed int

const (
	SP TapeSpeed = iota // standard play
	LP                  // long play
	EP                  // extended play
)

func (s TapeSpeed) String() string {
	switch s {
	case SP:
		return "sp"
	case LP:
		return "lp"
	case EP:
		return "ep"
	default:
		return fmt.Sprintf("TapeSpeed(%d)", int(s))
	}
}

func ParseTapeSpeed(s string) (TapeSpeed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sp":
		return SP, nil
	case "lp":
		return LP, nil
	case "ep", "slp":
		return EP, nil
	default:
		return SP, configError("tape_speed", s, ErrInvalidTapeSpeed)
	}
}

// Preset is the band and layout of one tape audio path.
type Preset struct {
	Name       string
	LowCutoff  float64
	HighCutoff float64
	Channels   int
	Passes     int
}

// Resolve picks the preset for the Hi-Fi track, or for the linear track at
// speed. Linear audio is mono unless linearStereo is set.
func Resolve(hifi bool, speed TapeSpeed, linearStereo bool) Preset {
	if hifi {
		return Preset{
			Name:       "hifi",
			LowCutoff:  20,
			HighCutoff: 20000,
			Channels:   2,
			Passes:     DefaultPasses,
		}
	}

	p := Preset{
		Name:      "linear-" + speed.String(),
		LowCutoff: 100,
		Channels:  1,
		Passes:    DefaultPasses,
	}
	switch speed {
	case LP:
		p.HighCutoff = 7000
	case EP:
		p.HighCutoff = 4000
	default:
		p.HighCutoff = 10000
	}
	if linearStereo {
		p.Channels = 2
	}

	return p
}

// Presets lists every preset, Hi-Fi first.
func Presets() []Preset {
	return []Preset{
		Resolve(true, SP, false),
		Resolve(false, SP, false),
		Resolve(false, LP, false),
		Resolve(false, EP, false),
	}
}

// Options turns the preset into processor options at sampleRate with
// preemphasis enabled at its default corner.
func (p Preset) Options(sampleRate int) Options {
	return Options{
		SampleRate:          sampleRate,
		Channels:            p.Channels,
		LowCutoffHz:         p.LowCutoff,
		HighCutoffHz:        p.HighCutoff,
		Passes:              p.Passes,
		PreemphasisCornerHz: DefaultPreemphasisCorner,
		EnablePreemphasis:   true,
		PreemphasisMode:     CrossChannel,
	}
}
