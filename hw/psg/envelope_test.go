package psg

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// expectedEnvelope builds the sequence of envelope levels of a shape, one per
// step, from the 4 control bits of the shape register.
func expectedEnvelope(shape uint8, steps int) []int {
	f := DecodeShape(shape)
	up := f.Attack
	held := -1

	seq := make([]int, 0, steps)
	for len(seq) < steps {
		if held >= 0 {
			seq = append(seq, held)
			continue
		}
		for i := 0; i <= envelopeMax && len(seq) < steps; i++ {
			if up {
				seq = append(seq, i)
			} else {
				seq = append(seq, envelopeMax-i)
			}
		}

		switch {
		case !f.Continue:
			held = 0
		case f.Hold:
			held = 0
			if f.Attack != f.Alternate {
				held = envelopeMax
			}
		case f.Alternate:
			up = !up
		}
	}
	return seq
}

func TestEnvelopeShapes(t *testing.T) {
	const steps = 160 // 5 full cycles

	for shape := 0; shape < 16; shape++ {
		t.Run(fmt.Sprintf("shape=%x", shape), func(t *testing.T) {
			p := newTestPSG(t, YM)
			must(t, p.SetEnvelope(0))
			must(t, p.SetEnvelopeShape(shape))

			got := []int{p.env.value}
			for len(got) < steps {
				got = append(got, p.env.tick())
			}

			want := expectedEnvelope(uint8(shape), steps)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("envelope levels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEnvelopePeriod(t *testing.T) {
	var env envelope
	env.setPeriod(3)
	env.setShape(0x0C) // sawtooth up

	// The first step happens 3 ticks after the shape is set.
	want := []int{0, 0, 1, 1, 1, 2, 2, 2, 3}
	got := make([]int, len(want))
	for i := range got {
		got[i] = env.tick()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("envelope with period 3 (-want +got):\n%s", diff)
	}
}

func TestEnvelopeShapeRestarts(t *testing.T) {
	var env envelope
	env.setPeriod(1)
	env.setShape(0x0E)
	for i := 0; i < 40; i++ {
		env.tick()
	}

	env.setShape(0x0E)
	if env.value != 0 || env.segment != 0 || env.counter != 0 {
		t.Fatalf("after shape write: value=%d segment=%d counter=%d, want all 0", env.value, env.segment, env.counter)
	}

	env.setShape(0x08)
	if env.value != envelopeMax {
		t.Fatalf("shape 8 starts at %d, want %d", env.value, envelopeMax)
	}
}

func TestShapeTableMatchesFlags(t *testing.T) {
	for shape := uint8(0); shape < 16; shape++ {
		f := DecodeShape(shape)
		first := envelopeShapes[shape][0]
		if f.Attack != (first == slideUp) {
			t.Errorf("shape %x: first segment %d does not match attack=%t", shape, first, f.Attack)
		}

		second := envelopeShapes[shape][1]
		holds := second == holdTop || second == holdBottom
		if f.Continue && !f.Hold && holds {
			t.Errorf("shape %x: continuous shape holds", shape)
		}
		if (!f.Continue || f.Hold) && !holds {
			t.Errorf("shape %x: one-shot shape does not hold", shape)
		}
	}
}
