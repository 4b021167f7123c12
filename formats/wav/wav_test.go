// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeAll(t *testing.T, r io.Reader) (rate, channels int, samples []float32) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf := make([]float32, 7)
	for {
		n, err := src.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	return src.SampleRate(), src.Channels(), samples
}

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 44100, 2, []int16{1, -1, 2, -2}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	b := buf.Bytes()
	if len(b) != headerSize+8 {
		t.Fatalf("len = %d, want %d", len(b), headerSize+8)
	}

	checks := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"riff size", binary.LittleEndian.Uint32(b[4:8]), 36 + 8},
		{"channels", uint32(binary.LittleEndian.Uint16(b[22:24])), 2},
		{"rate", binary.LittleEndian.Uint32(b[24:28]), 44100},
		{"byte rate", binary.LittleEndian.Uint32(b[28:32]), 44100 * 4},
		{"block align", uint32(binary.LittleEndian.Uint16(b[32:34])), 4},
		{"bits", uint32(binary.LittleEndian.Uint16(b[34:36])), 16},
		{"data size", binary.LittleEndian.Uint32(b[40:44]), 8},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if got := int16(binary.LittleEndian.Uint16(b[46:48])); got != -1 {
		t.Errorf("second sample = %d, want -1", got)
	}
}

func TestWriteWAV16_Rejects(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(io.Discard, 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("WriteWAV16(0 channels) error = %v, want %v", err, ErrInvalidChannels)
	}
	if err := WriteWAV16(io.Discard, 8000, 2, []int16{1, 2, 3}); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("WriteWAV16(partial) error = %v, want %v", err, ErrPartialFrame)
	}
}

func TestDecoder_ReadsWriteWAV16(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 2*1000)
	for i := range samples {
		samples[i] = int16((i*37)%65536 - 32768)
	}

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 22050, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	// a plain reader exercises the in-memory seek fallback
	rate, channels, got := decodeAll(t, io.MultiReader(&buf))
	if rate != 22050 || channels != 2 {
		t.Errorf("format = %d Hz/%d ch, want 22050 Hz/2 ch", rate, channels)
	}
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if want := float32(samples[i]) / 32768; got[i] != want {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, err := NewWriter(f, 48000, 1)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for _, block := range [][]int16{{0, 16384}, {-16384, 32767, -32768}} {
		if err := w.WritePCM16(block); err != nil {
			t.Fatalf("WritePCM16() error = %v", err)
		}
	}
	if w.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", w.Frames())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rate, channels, got := decodeAll(t, f)
	if rate != 48000 || channels != 1 {
		t.Errorf("format = %d Hz/%d ch, want 48000 Hz/1 ch", rate, channels)
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768, -1}
	if len(got) != len(want) {
		t.Fatalf("decoded %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestWriter_Rejects(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := NewWriter(f, 44100, 0); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("NewWriter(0 channels) error = %v, want %v", err, ErrInvalidChannels)
	}

	w, _ := NewWriter(f, 44100, 2)
	if err := w.WritePCM16([]int16{1}); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("WritePCM16(partial) error = %v, want %v", err, ErrPartialFrame)
	}
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(strings.NewReader("definitely not riff data, just text")); !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode(text) error = %v, want %v", err, ErrNotWavFile)
	}

	// IEEE float tag
	var buf bytes.Buffer
	if err := WriteWAV16(&buf, 8000, 1, []int16{0, 0}); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	binary.LittleEndian.PutUint16(b[20:22], 3)

	if _, err := (Decoder{}).Decode(bytes.NewReader(b)); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Decode(float) error = %v, want %v", err, ErrUnsupportedEncoding)
	}
}

// extensibleWAV builds a mono WAVE_FORMAT_EXTENSIBLE file whose sub-format
// GUID carries subFormat.
func extensibleWAV(bits, subFormat uint16, data []byte) []byte {
	const rate = 8000

	fmtChunk := make([]byte, 40)
	le := binary.LittleEndian
	le.PutUint16(fmtChunk[0:], formatExtensible)
	le.PutUint16(fmtChunk[2:], 1)
	le.PutUint32(fmtChunk[4:], rate)
	le.PutUint32(fmtChunk[8:], rate*uint32(bits/8))
	le.PutUint16(fmtChunk[12:], bits/8)
	le.PutUint16(fmtChunk[14:], bits)
	le.PutUint16(fmtChunk[16:], 22)
	le.PutUint16(fmtChunk[18:], bits)
	le.PutUint32(fmtChunk[20:], 4) // front center
	le.PutUint16(fmtChunk[24:], subFormat)
	copy(fmtChunk[26:], ksDataFormatSuffix)

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, le, uint32(4+8+len(fmtChunk)+8+len(data)))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, le, uint32(len(fmtChunk)))
	b.Write(fmtChunk)
	b.WriteString("data")
	binary.Write(&b, le, uint32(len(data)))
	b.Write(data)

	return b.Bytes()
}

func TestDecoder_ExtensiblePCM(t *testing.T) {
	t.Parallel()

	data := make([]byte, 8)
	for i, v := range []int16{0, 16384, -16384, -32768} {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(v))
	}

	rate, channels, samples := decodeAll(t, bytes.NewReader(extensibleWAV(16, formatPCM, data)))
	if rate != 8000 || channels != 1 {
		t.Errorf("format = %d Hz/%d ch, want 8000 Hz/1 ch", rate, channels)
	}

	want := []float32{0, 0.5, -0.5, -1}
	if len(samples) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestDecoder_ExtensibleRejectsFloat(t *testing.T) {
	t.Parallel()

	const formatIEEEFloat = 3
	file := extensibleWAV(32, formatIEEEFloat, make([]byte, 16))

	_, err := Decoder{}.Decode(bytes.NewReader(file))
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Decode(extensible float) error = %v, want %v", err, ErrUnsupportedEncoding)
	}
}

func TestDecoder_ExtensibleUnknownGUID(t *testing.T) {
	t.Parallel()

	file := extensibleWAV(16, formatPCM, make([]byte, 4))
	// corrupt the GUID suffix, which sits after the 12-byte RIFF header,
	// the 8-byte chunk header and 26 bytes into the fmt body
	file[12+8+26] = 0xff

	_, err := Decoder{}.Decode(bytes.NewReader(file))
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Errorf("Decode(unknown GUID) error = %v, want %v", err, ErrUnsupportedEncoding)
	}
}
