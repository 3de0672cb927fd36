package psg

import "math"

// panGains returns the left and right gains of a channel panned at pan, pan
// being in [0, 1], 0 is full left. Equal power panning keeps the perceived
// loudness constant across the stereo field.
func panGains(pan float64, equalPower bool) (left, right float64) {
	if equalPower {
		return math.Sqrt(1 - pan), math.Sqrt(pan)
	}
	return 1 - pan, pan
}

func clampPan(pan float64) float64 {
	return min(max(pan, 0), 1)
}

// mix clocks all generators once and returns the resulting stereo level,
// before resampling.
func (p *PSG) mix() (left, right float64) {
	noise := p.noise.tick()
	env := p.env.tick()

	for i := range p.channels {
		ch := &p.channels[i]
		out := p.dac[ch.amplitude(ch.tick(), noise, env)]
		left += out * ch.panLeft
		right += out * ch.panRight
	}
	return left, right
}
