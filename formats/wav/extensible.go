// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

const (
	extensibleFmtSize = 40
	subFormatOffset   = 24
)

// ksDataFormatSuffix is the part of a KSDATAFORMAT_SUBTYPE_* GUID that
// follows its two-byte format tag.
var ksDataFormatSuffix = []byte{
	0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00,
	0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
}

// extensibleSubFormat returns the format tag wrapped by the sub-format GUID
// of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The read position of rs is
// restored before returning.
func extensibleSubFormat(rs io.ReadSeeker) (tag uint16, err error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, seekErr := rs.Seek(pos, io.SeekStart); err == nil {
			err = seekErr
		}
	}()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return 0, ErrNotWavFile
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrUnsupportedWavLayout)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		if ch.Size < extensibleFmtSize {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedWavLayout, ch.Size)
		}
		body := make([]byte, extensibleFmtSize)
		if _, err := io.ReadFull(ch, body); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}

		guid := body[subFormatOffset:]
		if !bytes.Equal(guid[2:], ksDataFormatSuffix) {
			return 0, fmt.Errorf("%w: unknown sub-format % x", ErrUnsupportedEncoding, guid)
		}
		return binary.LittleEndian.Uint16(guid[:2]), nil
	}
}
