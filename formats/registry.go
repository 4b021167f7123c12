// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/vhsaudio/audio"
	"github.com/ik5/vhsaudio/formats/aiff"
	"github.com/ik5/vhsaudio/formats/mp3"
	"github.com/ik5/vhsaudio/formats/vorbis"
	"github.com/ik5/vhsaudio/formats/wav"
)

// NewRegistry returns a registry keyed by the usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	for key, dec := range map[string]audio.Decoder{
		"wav":  wav.Decoder{},
		"wave": wav.Decoder{},
		"aif":  aiff.Decoder{},
		"aiff": aiff.Decoder{},
		"mp3":  mp3.Decoder{},
		"ogg":  vorbis.Decoder{},
		"oga":  vorbis.Decoder{},
	} {
		reg.Register(key, dec)
	}

	return reg
}
