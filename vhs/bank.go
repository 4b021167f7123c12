// SPDX-License-Identifier: EPL-2.0

package vhs

// BankConfig is the shared configuration of every channel in a FilterBank.
type BankConfig struct {
	Channels   int
	SampleRate float64
	LowCutoff  float64
	HighCutoff float64
	Passes     int
}

// FilterBank holds one CascadedBand per output channel.
type FilterBank []CascadedBand

// BuildBank returns a fresh bank for cfg. It never touches an existing bank.
func BuildBank(cfg BankConfig) (FilterBank, error) {
	if cfg.Channels <= 0 {
		return nil, configError("channels", cfg.Channels, ErrInvalidChannels)
	}

	bank := make(FilterBank, cfg.Channels)
	for c := range bank {
		band, err := NewCascadedBand(cfg.Passes, cfg.SampleRate, cfg.LowCutoff, cfg.HighCutoff)
		if err != nil {
			return nil, err
		}
		bank[c] = band
	}

	return bank, nil
}

func (fb FilterBank) Channels() int { return len(fb) }

func (fb FilterBank) Reset() {
	for _, band := range fb {
		band.Reset()
	}
}

// BankManager tracks the bank configuration and rebuilds the bank on
// demand. Changing any tracked value drops the current bank, so stale
// per-channel state never survives a reconfiguration. Setting a value to
// what it already is keeps the bank.
type BankManager struct {
	cfg  BankConfig
	bank FilterBank
}

func (m *BankManager) SetChannels(channels int) {
	if m.cfg.Channels != channels {
		m.Clear()
		m.cfg.Channels = channels
	}
}

func (m *BankManager) SetRate(rate float64) {
	if m.cfg.SampleRate != rate {
		m.Clear()
		m.cfg.SampleRate = rate
	}
}

func (m *BankManager) SetCutoff(low, high float64) {
	if m.cfg.LowCutoff != low || m.cfg.HighCutoff != high {
		m.Clear()
		m.cfg.LowCutoff = low
		m.cfg.HighCutoff = high
	}
}

func (m *BankManager) SetPasses(passes int) {
	if m.cfg.Passes != passes {
		m.Clear()
		m.cfg.Passes = passes
	}
}

// Clear drops the bank. The tracked configuration is kept.
func (m *BankManager) Clear() { m.bank = nil }

// Init rebuilds the bank from the tracked configuration. When a parameter
// is still zero, or is rejected, the bank stays empty and the error says
// which one.
func (m *BankManager) Init() error {
	m.Clear()

	switch {
	case m.cfg.Channels == 0:
		return configError("channels", 0, ErrInvalidChannels)
	case m.cfg.Passes == 0:
		return configError("passes", 0, ErrInvalidPasses)
	case m.cfg.SampleRate == 0:
		return configError("sample_rate", 0, ErrInvalidSampleRate)
	case m.cfg.LowCutoff == 0 || m.cfg.HighCutoff == 0:
		return configError("cutoff", 0, ErrInvalidCutoff)
	}

	bank, err := BuildBank(m.cfg)
	if err != nil {
		return err
	}
	m.bank = bank

	return nil
}

func (m *BankManager) Ready() bool        { return len(m.bank) > 0 }
func (m *BankManager) Bank() FilterBank   { return m.bank }
func (m *BankManager) Config() BankConfig { return m.cfg }
