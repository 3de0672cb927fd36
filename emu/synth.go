package emu

import (
	"aysynth/emu/log"
	"aysynth/hw/hwdefs"
	"aysynth/hw/psg"
)

// Synth is a PSG configured from a Config, rendering blocks of interleaved
// stereo samples.
type Synth struct {
	psg *psg.PSG
	cfg Config
}

func NewSynth(cfg Config) (*Synth, error) {
	if err := cfg.Check(); err != nil {
		log.ModConfig.WarnZ("invalid config").Error("err", err).End()
		return nil, err
	}

	pcfg, err := cfg.Chip.psgConfig()
	if err != nil {
		return nil, err
	}
	p, err := psg.NewFromConfig(pcfg)
	if err != nil {
		return nil, err
	}

	s := &Synth{psg: p, cfg: Config{Chip: cfg.Chip}}
	if err := s.Apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply programs the chip with the channel, noise and envelope settings of
// cfg, and adopts its DC removal setting. The chip settings (variant, clock
// and sample rate) can't be changed once the Synth is created, the ones of
// cfg must be valid but are otherwise ignored.
func (s *Synth) Apply(cfg Config) error {
	if err := cfg.Check(); err != nil {
		return err
	}

	for i := 0; i < hwdefs.NumToneChannels; i++ {
		ch := psg.Channel(i)
		chcfg := cfg.Channels.channel(ch)
		err := firstErr(
			s.psg.SetTone(ch, chcfg.Period),
			s.psg.SetVolume(ch, chcfg.Volume),
			s.psg.SetPan(ch, chcfg.Pan, chcfg.EqualPower),
			s.psg.SetMixer(ch, chcfg.Tone, chcfg.Noise, chcfg.Envelope),
		)
		if err != nil {
			return err
		}
	}

	err := firstErr(
		s.psg.SetNoise(cfg.Noise.Period),
		s.psg.SetEnvelope(cfg.Envelope.Period),
		s.psg.SetEnvelopeShape(cfg.Envelope.Shape),
	)
	if err != nil {
		return err
	}

	chip := s.cfg.Chip
	chip.RemoveDC = cfg.Chip.RemoveDC
	s.cfg = cfg
	s.cfg.Chip = chip
	log.ModConfig.DebugZ("config applied").Bool("dc", s.cfg.Chip.RemoveDC).End()
	return nil
}

// Render fills dst with interleaved stereo frames and returns the number of
// frames rendered.
func (s *Synth) Render(dst []float64) int {
	return s.psg.Render(dst, s.cfg.Chip.RemoveDC)
}

// Reset powers the chip up again and reapplies the current configuration.
func (s *Synth) Reset() {
	s.psg.Reset()
	if err := s.Apply(s.cfg); err != nil {
		// The configuration has been applied once already.
		log.ModConfig.ErrorZ("failed to reapply config").Error("err", err).End()
	}
}

// Config returns the configuration in effect.
func (s *Synth) Config() Config { return s.cfg }

func (s *Synth) PSG() *psg.PSG { return s.psg }

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
