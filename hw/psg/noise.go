package psg

const noiseSeed = 1

// noise is the pseudo-random generator shared by the 3 channels: a 17-bit
// LFSR with taps on bits 0 and 3, clocked at half the tone rate.
type noise struct {
	period  int
	counter int
	lfsr    uint32
}

func (n *noise) tick() int {
	n.counter++
	if n.counter >= n.period<<1 {
		n.counter = 0
		bit := (n.lfsr ^ (n.lfsr >> 3)) & 1
		n.lfsr = (n.lfsr >> 1) | (bit << 16)
	}
	return int(n.lfsr & 1)
}
