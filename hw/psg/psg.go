// Package psg emulates the sound generation of the AY-3-8910 and YM2149
// programmable sound generators.
//
// The chip logic (3 tone generators, a noise generator and an envelope
// generator) runs at its native rate, clock/8. Its output is resampled to the
// requested sample rate through an 8x oversampled stream built by polynomial
// interpolation, then low-pass filtered and decimated.
//
// A PSG is not safe for concurrent use. Independent PSG instances share no
// mutable state.
package psg

import (
	"fmt"
	"math"

	"aysynth/emu/log"
	"aysynth/hw/hwdefs"
)

// Config holds the parameters fixed at construction.
type Config struct {
	Variant    Variant
	ClockRate  float64 // chip clock in Hz
	SampleRate int     // output sample rate in Hz
}

// Check reports whether a PSG can be built from cfg.
func (cfg Config) Check() error {
	if cfg.Variant != AY && cfg.Variant != YM {
		return fmt.Errorf("%w: unknown chip variant %d", ErrInvalidConfig, uint8(cfg.Variant))
	}
	if !(cfg.ClockRate > 0) || math.IsInf(cfg.ClockRate, 1) {
		return fmt.Errorf("%w: clock rate %v", ErrInvalidConfig, cfg.ClockRate)
	}
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, cfg.SampleRate)
	}
	if step := cfg.step(); step > maxStep {
		return fmt.Errorf("%w: clock rate %v too high for a %d Hz output (%.0f ticks per oversampled sample, max %d)",
			ErrInvalidConfig, cfg.ClockRate, cfg.SampleRate, step, maxStep)
	}
	return nil
}

// step is the number of mixer updates per oversampled sample. The tone
// counters of the real chip are clocked every 8 cycles.
func (cfg Config) step() float64 {
	return cfg.ClockRate / (float64(cfg.SampleRate) * 8 * decimateFactor)
}

type PSG struct {
	cfg  Config
	dac  *[32]float64
	step float64
	x    float64 // position between the last 2 mixer updates

	channels [hwdefs.NumToneChannels]toneChannel
	noise    noise
	env      envelope

	interpLeft  interpolator
	interpRight interpolator
	firLeft     fir
	firRight    fir
	firIndex    int
	dcLeft      dcFilter
	dcRight     dcFilter
	dcIndex     int

	left  float64
	right float64
}

// New returns a PSG in its power-on state. All channels have a zero pan
// weight on both sides, so they are silent until SetPan is called.
func New(variant Variant, clockRate float64, sampleRate int) (*PSG, error) {
	return NewFromConfig(Config{
		Variant:    variant,
		ClockRate:  clockRate,
		SampleRate: sampleRate,
	})
}

func NewFromConfig(cfg Config) (*PSG, error) {
	if err := cfg.Check(); err != nil {
		log.ModPSG.WarnZ("invalid configuration").Error("err", err).End()
		return nil, err
	}

	p := &PSG{cfg: cfg}
	p.powerUp()

	log.ModPSG.InfoZ("chip created").
		Stringer("variant", cfg.Variant).
		Float("clock", cfg.ClockRate).
		Int("rate", cfg.SampleRate).
		Float("step", p.step).
		End()
	return p, nil
}

func (p *PSG) powerUp() {
	p.dac = dacTable(p.cfg.Variant)
	p.step = p.cfg.step()
	p.noise.lfsr = noiseSeed
	p.env.setPeriod(1)
	for i := range p.channels {
		p.channels[i].setPeriod(1)
	}
}

// Reset puts the PSG back in its power-on state, keeping its configuration.
func (p *PSG) Reset() {
	*p = PSG{cfg: p.cfg}
	p.powerUp()
}

func (p *PSG) Config() Config { return p.cfg }

// SetTone sets the tone period of a channel. The square wave toggles every
// max(period, 1) ticks of clock/8.
func (p *PSG) SetTone(ch Channel, period int) error {
	if err := p.check(checkChannel(ch), checkRange("tone period", period, MaxTonePeriod)); err != nil {
		return err
	}
	p.channels[ch].setPeriod(period)
	log.ModPSG.DebugZ("set tone").Stringer("ch", ch).Int("period", period).End()
	return nil
}

// SetPan places a channel in the stereo field, pan is clamped to [0, 1] (0 is
// full left, 1 full right). Use equalPower to get a constant perceived
// loudness across the field, rather than linear gains.
func (p *PSG) SetPan(ch Channel, pan float64, equalPower bool) error {
	if err := checkChannel(ch); err != nil {
		return p.check(err)
	}
	if math.IsNaN(pan) {
		return p.check(fmt.Errorf("%w: pan is NaN", ErrOutOfRange))
	}

	pan = clampPan(pan)
	c := &p.channels[ch]
	c.panLeft, c.panRight = panGains(pan, equalPower)
	log.ModPSG.DebugZ("set pan").Stringer("ch", ch).Float("pan", pan).Bool("eqp", equalPower).End()
	return nil
}

// SetVolume sets the fixed volume of a channel, used when its envelope is
// disabled.
func (p *PSG) SetVolume(ch Channel, volume int) error {
	if err := p.check(checkChannel(ch), checkRange("volume", volume, MaxVolume)); err != nil {
		return err
	}
	p.channels[ch].volume = volume
	log.ModPSG.DebugZ("set volume").Stringer("ch", ch).Int("volume", volume).End()
	return nil
}

// SetMixer enables or disables the tone, noise and envelope of a channel.
func (p *PSG) SetMixer(ch Channel, tone, noise, envelope bool) error {
	if err := p.check(checkChannel(ch)); err != nil {
		return err
	}
	p.channels[ch].setMixer(tone, noise, envelope)
	log.ModPSG.DebugZ("set mixer").
		Stringer("ch", ch).
		Bool("tone", tone).
		Bool("noise", noise).
		Bool("env", envelope).
		End()
	return nil
}

// SetNoise sets the noise period. The generator shifts its LFSR every
// 2*period ticks.
func (p *PSG) SetNoise(period int) error {
	if err := p.check(checkRange("noise period", period, MaxNoisePeriod)); err != nil {
		return err
	}
	p.noise.period = period
	log.ModPSG.DebugZ("set noise").Int("period", period).End()
	return nil
}

// SetEnvelope sets the envelope period, the number of ticks between 2 steps
// of the envelope. 0 behaves as 1.
func (p *PSG) SetEnvelope(period int) error {
	if err := p.check(checkRange("envelope period", period, MaxEnvelopePeriod)); err != nil {
		return err
	}
	p.env.setPeriod(period)
	log.ModPSG.DebugZ("set envelope").Int("period", period).End()
	return nil
}

// SetEnvelopeShape selects the envelope shape and restarts the envelope.
func (p *PSG) SetEnvelopeShape(shape int) error {
	if err := p.check(checkRange("envelope shape", shape, MaxEnvelopeShape)); err != nil {
		return err
	}
	p.env.setShape(shape)
	log.ModPSG.DebugZ("set envelope shape").Hex8("shape", uint8(shape)).End()
	return nil
}

// check returns the first non-nil error of errs, after having logged it.
func (p *PSG) check(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			log.ModPSG.DebugZ("rejected").Error("err", err).End()
			return err
		}
	}
	return nil
}

// Advance computes the next output sample. It clocks the chip about
// 8*step times, step being bounded by Config.Check.
func (p *PSG) Advance() {
	firLeft := p.firLeft.window(p.firIndex)
	firRight := p.firRight.window(p.firIndex)
	p.firIndex = (p.firIndex + 1) % firRing

	for i := decimateFactor - 1; i >= 0; i-- {
		p.x += p.step
		for p.x >= 1 {
			p.x--
			left, right := p.mix()
			p.interpLeft.push(left)
			p.interpRight.push(right)
		}
		firLeft[i] = p.interpLeft.at(p.x)
		firRight[i] = p.interpRight.at(p.x)
	}

	p.left = decimate(firLeft)
	p.right = decimate(firRight)
}

// RemoveDC runs the current sample through the DC blocking filter. It should
// be called at most once per Advance.
func (p *PSG) RemoveDC() {
	p.left = p.dcLeft.apply(p.dcIndex, p.left)
	p.right = p.dcRight.apply(p.dcIndex, p.right)
	p.dcIndex = (p.dcIndex + 1) & (dcFilterSize - 1)
}

// Sample returns the current output sample. Values are nominally within
// [-1, 1].
func (p *PSG) Sample() (left, right float64) {
	return p.left, p.right
}

// Render fills dst with interleaved stereo samples (left, right, ...) and
// returns the number of frames rendered, that is len(dst)/2.
func (p *PSG) Render(dst []float64, removeDC bool) int {
	n := len(dst) / 2
	for i := 0; i < n; i++ {
		p.Advance()
		if removeDC {
			p.RemoveDC()
		}
		dst[2*i] = p.left
		dst[2*i+1] = p.right
	}
	return n
}
