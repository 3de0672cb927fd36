package psg

import (
	"testing"
)

func newTestPSG(tb testing.TB, variant Variant) *PSG {
	tb.Helper()

	p, err := New(variant, 1_000_000, 44100)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	return p
}

func must(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatal(err)
	}
}

// constantOutput configures channel A to output a constant level: tone and
// noise gates held open and full fixed volume, panned in the middle.
func constantOutput(tb testing.TB, p *PSG) {
	tb.Helper()
	must(tb, p.SetMixer(A, false, false, false))
	must(tb, p.SetVolume(A, 15))
	must(tb, p.SetPan(A, 0.5, false))
}
