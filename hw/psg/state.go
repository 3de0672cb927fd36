package psg

import (
	"fmt"
	"math"
	"slices"

	"aysynth/emu/log"
	"aysynth/hw/snapshot"
)

// State returns a copy of the complete chip state.
func (p *PSG) State() *snapshot.PSG {
	state := snapshot.PSG{
		Variant:    uint8(p.cfg.Variant),
		ClockRate:  p.cfg.ClockRate,
		SampleRate: p.cfg.SampleRate,
		X:          p.x,
		FIRLeft:    p.firLeft,
		FIRRight:   p.firRight,
		FIRIndex:   p.firIndex,
		DCIndex:    p.dcIndex,
		Left:       p.left,
		Right:      p.right,
	}
	for i := range p.channels {
		p.channels[i].saveState(&state.Channels[i])
	}
	p.noise.saveState(&state.Noise)
	p.env.saveState(&state.Envelope)
	p.interpLeft.saveState(&state.InterpLeft)
	p.interpRight.saveState(&state.InterpRight)
	p.dcLeft.saveState(&state.DCLeft)
	p.dcRight.saveState(&state.DCRight)
	return &state
}

// SetState restores a state returned by State. The state must come from a
// PSG built with the same configuration. An invalid state is rejected and the
// chip is left untouched.
func (p *PSG) SetState(state *snapshot.PSG) error {
	if err := p.checkState(state); err != nil {
		log.ModSnapshot.WarnZ("rejected snapshot").Error("err", err).End()
		return err
	}

	p.x = state.X
	p.firLeft = state.FIRLeft
	p.firRight = state.FIRRight
	p.firIndex = state.FIRIndex
	p.dcIndex = state.DCIndex
	p.left = state.Left
	p.right = state.Right
	for i := range p.channels {
		p.channels[i].setState(&state.Channels[i])
	}
	p.noise.setState(&state.Noise)
	p.env.setState(&state.Envelope)
	p.interpLeft.setState(&state.InterpLeft)
	p.interpRight.setState(&state.InterpRight)
	p.dcLeft.setState(&state.DCLeft)
	p.dcRight.setState(&state.DCRight)

	log.ModSnapshot.DebugZ("state restored").Int("fir", p.firIndex).Int("dc", p.dcIndex).End()
	return nil
}

func (p *PSG) checkState(state *snapshot.PSG) error {
	cfg := Config{
		Variant:    Variant(state.Variant),
		ClockRate:  state.ClockRate,
		SampleRate: state.SampleRate,
	}
	if cfg != p.cfg {
		return fmt.Errorf("%w: snapshot of a %v chip at %v Hz / %d Hz", ErrInvalidConfig, cfg.Variant, cfg.ClockRate, cfg.SampleRate)
	}

	for i, ch := range state.Channels {
		if ch.Period < 1 || ch.Period > MaxTonePeriod {
			return fmt.Errorf("%w: channel %v period %d", ErrOutOfRange, Channel(i), ch.Period)
		}
		if ch.Tone != 0 && ch.Tone != 1 {
			return fmt.Errorf("%w: channel %v tone level %d", ErrOutOfRange, Channel(i), ch.Tone)
		}
		if err := checkRange("volume", ch.Volume, MaxVolume); err != nil {
			return err
		}
		for _, gain := range []float64{ch.PanLeft, ch.PanRight} {
			if !(gain >= 0 && gain <= 1) {
				return fmt.Errorf("%w: channel %v pan gain %v", ErrOutOfRange, Channel(i), gain)
			}
		}
	}

	// x only grows by step before Advance brings it back below 1.
	if !(state.X >= 0 && state.X < 1) {
		return fmt.Errorf("%w: resampler position %v", ErrOutOfRange, state.X)
	}
	signals := []struct {
		what string
		vals []float64
	}{
		{"left interpolator", append(state.InterpLeft.C[:], state.InterpLeft.Y[:]...)},
		{"right interpolator", append(state.InterpRight.C[:], state.InterpRight.Y[:]...)},
		{"left fir", state.FIRLeft[:]},
		{"right fir", state.FIRRight[:]},
		{"left dc filter", append(state.DCLeft.Delay[:], state.DCLeft.Sum)},
		{"right dc filter", append(state.DCRight.Delay[:], state.DCRight.Sum)},
		{"output", []float64{state.Left, state.Right}},
	}
	for _, sig := range signals {
		if i := slices.IndexFunc(sig.vals, notFinite); i >= 0 {
			return fmt.Errorf("%w: %s holds %v", ErrOutOfRange, sig.what, sig.vals[i])
		}
	}

	env := state.Envelope
	errs := []error{
		checkRange("noise period", state.Noise.Period, MaxNoisePeriod),
		checkRange("envelope period", env.Period-1, MaxEnvelopePeriod-1),
		checkRange("envelope shape", env.Shape, MaxEnvelopeShape),
		checkRange("envelope segment", env.Segment, 1),
		checkRange("envelope value", env.Value, envelopeMax),
		checkRange("fir index", state.FIRIndex, firRing-1),
		checkRange("dc index", state.DCIndex, dcFilterSize-1),
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	if state.Noise.LFSR == 0 || state.Noise.LFSR >= 1<<17 {
		return fmt.Errorf("%w: noise lfsr %#x", ErrOutOfRange, state.Noise.LFSR)
	}
	return nil
}

func notFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func (tc *toneChannel) saveState(state *snapshot.ToneChannel) {
	state.Period = tc.period
	state.Counter = tc.counter
	state.Tone = tc.tone
	state.ToneOff = tc.toneOff != 0
	state.NoiseOff = tc.noiseOff != 0
	state.EnvelopeOn = tc.envOn
	state.Volume = tc.volume
	state.PanLeft = tc.panLeft
	state.PanRight = tc.panRight
}

func (tc *toneChannel) setState(state *snapshot.ToneChannel) {
	tc.period = state.Period
	tc.counter = state.Counter
	tc.tone = state.Tone
	tc.toneOff = boolToInt(state.ToneOff)
	tc.noiseOff = boolToInt(state.NoiseOff)
	tc.envOn = state.EnvelopeOn
	tc.volume = state.Volume
	tc.panLeft = state.PanLeft
	tc.panRight = state.PanRight
}

func (n *noise) saveState(state *snapshot.Noise) {
	state.Period = n.period
	state.Counter = n.counter
	state.LFSR = n.lfsr
}

func (n *noise) setState(state *snapshot.Noise) {
	n.period = state.Period
	n.counter = state.Counter
	n.lfsr = state.LFSR
}

func (env *envelope) saveState(state *snapshot.Envelope) {
	state.Period = env.period
	state.Counter = env.counter
	state.Shape = env.shape
	state.Segment = env.segment
	state.Value = env.value
}

func (env *envelope) setState(state *snapshot.Envelope) {
	env.period = state.Period
	env.counter = state.Counter
	env.shape = state.Shape
	env.segment = state.Segment
	env.value = state.Value
}

func (it *interpolator) saveState(state *snapshot.Interpolator) {
	state.C = it.c
	state.Y = it.y
}

func (it *interpolator) setState(state *snapshot.Interpolator) {
	it.c = state.C
	it.y = state.Y
}

func (dc *dcFilter) saveState(state *snapshot.DCFilter) {
	state.Sum = dc.sum
	state.Delay = dc.delay
}

func (dc *dcFilter) setState(state *snapshot.DCFilter) {
	dc.sum = state.Sum
	dc.delay = state.Delay
}
