// SPDX-License-Identifier: EPL-2.0

package audio

// Sink consumes interleaved signed 16-bit PCM blocks.
type Sink interface {
	// WritePCM16 must not retain samples after it returns.
	WritePCM16(samples []int16) error
	Close() error
}

// MemorySink collects every sample written to it.
type MemorySink struct {
	Samples []int16
	closed  bool
}

func (m *MemorySink) WritePCM16(samples []int16) error {
	if m.closed {
		return ErrSinkClosed
	}
	m.Samples = append(m.Samples, samples...)
	return nil
}

func (m *MemorySink) Close() error {
	m.closed = true
	return nil
}
