package psg

// firRing numbers the 8-sample blocks of a fir buffer. The window of block i
// starts at firSize-i*decimateFactor.
const firRing = firSize/decimateFactor - 1

// fir holds the oversampled history of one side. Blocks are written at
// decreasing offsets and each one is mirrored firSize-decimateFactor further,
// so that any window always sees the last firSize samples contiguously,
// newest first.
type fir [2 * firSize]float64

// window returns the slice in which the next block, at ring position index,
// is written and filtered.
func (f *fir) window(index int) []float64 {
	return f[firSize-index*decimateFactor:]
}

// decimate filters the window x, whose decimateFactor first samples have just
// been written, and returns one output sample.
func decimate(x []float64) float64 {
	const half = firSize / 2

	y := firTaps[half] * x[half]
	for k := 1; k < half; k++ {
		if k%decimateFactor == 0 {
			continue
		}
		y += firTaps[k] * (x[k] + x[firSize-k])
	}
	copy(x[firSize-decimateFactor:firSize], x[:decimateFactor])
	return y
}
