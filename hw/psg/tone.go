package psg

// toneChannel is a square wave generator together with the mixer and volume
// settings of its channel.
type toneChannel struct {
	period  int
	counter int
	tone    int // current square level, 0 or 1

	// Mixer flags, with the chip's inverted convention for tone and noise: a
	// disabled source forces its gate open.
	toneOff  int
	noiseOff int
	envOn    bool
	volume   int

	panLeft  float64
	panRight float64
}

func (tc *toneChannel) setPeriod(period int) {
	tc.period = max(period, 1)
}

func (tc *toneChannel) setMixer(tone, noise, envelope bool) {
	tc.toneOff = boolToInt(!tone)
	tc.noiseOff = boolToInt(!noise)
	tc.envOn = envelope
}

func (tc *toneChannel) tick() int {
	tc.counter++
	if tc.counter >= tc.period {
		tc.counter = 0
		tc.tone ^= 1
	}
	return tc.tone
}

// amplitude returns the index in the DAC table for the given generator
// outputs.
func (tc *toneChannel) amplitude(tone, noise, envelope int) int {
	out := (tone | tc.toneOff) & (noise | tc.noiseOff)
	if tc.envOn {
		return out * envelope
	}
	return out * (tc.volume*2 + 1)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
