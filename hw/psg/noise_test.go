package psg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noiseSequence(period, ticks int) []int {
	n := noise{period: period, lfsr: noiseSeed}
	seq := make([]int, ticks)
	for i := range seq {
		seq[i] = n.tick()
	}
	return seq
}

func TestNoiseDeterministic(t *testing.T) {
	for _, period := range []int{0, 1, 5, 31} {
		a := noiseSequence(period, 10000)
		b := noiseSequence(period, 10000)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("period %d: noise sequences differ (-first +second):\n%s", period, diff)
		}
	}
}

func TestNoiseShiftRate(t *testing.T) {
	for _, period := range []int{0, 1, 2, 17, MaxNoisePeriod} {
		n := noise{period: period, lfsr: noiseSeed}
		want := max(2*period, 1)

		shifts := 0
		prev := n.lfsr
		for tick := 1; shifts < 5; tick++ {
			n.tick()
			if n.counter != 0 {
				continue
			}
			shifts++
			if tick != shifts*want {
				t.Fatalf("period %d: shift %d at tick %d, want %d", period, shifts, tick, shifts*want)
			}
			if n.lfsr == prev {
				t.Fatalf("period %d: lfsr did not change on shift %d", period, shifts)
			}
			prev = n.lfsr
		}
	}
}

func TestNoiseMaximalLength(t *testing.T) {
	const length = 1<<17 - 1

	n := noise{lfsr: noiseSeed}
	for i := 1; i <= length; i++ {
		n.tick()
		if n.lfsr == noiseSeed && i != length {
			t.Fatalf("lfsr sequence repeats after %d shifts, want %d", i, length)
		}
		if n.lfsr == 0 || n.lfsr >= 1<<17 {
			t.Fatalf("lfsr out of range after %d shifts: %#x", i, n.lfsr)
		}
	}
	if n.lfsr != noiseSeed {
		t.Fatalf("lfsr = %#x after %d shifts, want the seed back", n.lfsr, length)
	}
}
