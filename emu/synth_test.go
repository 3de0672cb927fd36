package emu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aysynth/hw/psg"
)

func newTestSynth(t *testing.T) *Synth {
	t.Helper()

	cfg, err := DecodeConfig(strings.NewReader(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSynth(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSynthDefaultIsSilent(t *testing.T) {
	s, err := NewSynth(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 2*2048)
	if n := s.Render(buf); n != 2048 {
		t.Fatalf("Render() = %d, want 2048", n)
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v, want silence", i, v)
		}
	}
}

func TestSynthMatchesPSG(t *testing.T) {
	s := newTestSynth(t)

	p, err := psg.New(psg.YM, 2_000_000, 48000)
	if err != nil {
		t.Fatal(err)
	}
	setup := []error{
		p.SetTone(psg.A, 284),
		p.SetVolume(psg.A, 15),
		p.SetPan(psg.A, 0.1, false),
		p.SetMixer(psg.A, true, false, false),
		p.SetTone(psg.B, 1000),
		p.SetVolume(psg.B, 8),
		p.SetPan(psg.B, 0.5, true),
		p.SetMixer(psg.B, true, true, false),
		p.SetPan(psg.C, 0.9, false),
		p.SetMixer(psg.C, false, false, true),
		p.SetNoise(12),
		p.SetEnvelope(3000),
		p.SetEnvelopeShape(14),
	}
	if err := errors.Join(setup...); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(p.State(), s.PSG().State()); diff != "" {
		t.Fatalf("configured state (-want +got):\n%s", diff)
	}

	want := make([]float64, 2*1000)
	p.Render(want, false)
	got := make([]float64, 2*1000)
	s.Render(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendered samples (-want +got):\n%s", diff)
	}
}

func TestSynthApply(t *testing.T) {
	s := newTestSynth(t)
	chip := s.Config().Chip

	cfg := DefaultConfig()
	cfg.Channels.A.Volume = 3
	cfg.Chip.RemoveDC = true
	if err := s.Apply(cfg); err != nil {
		t.Fatal(err)
	}

	chip.RemoveDC = true
	if diff := cmp.Diff(chip, s.Config().Chip); diff != "" {
		t.Errorf("chip settings changed by Apply (-want +got):\n%s", diff)
	}
	if got := s.PSG().State().Channels[psg.A].Volume; got != 3 {
		t.Errorf("channel A volume = %d, want 3", got)
	}

	cfg.Channels.A.Volume = 16
	if err := s.Apply(cfg); !errors.Is(err, psg.ErrOutOfRange) {
		t.Fatalf("Apply() = %v, want ErrOutOfRange", err)
	}
	if got := s.PSG().State().Channels[psg.A].Volume; got != 3 {
		t.Errorf("channel A volume = %d after rejected Apply, want 3", got)
	}
}

func TestSynthReset(t *testing.T) {
	s := newTestSynth(t)
	want := make([]float64, 2*500)
	s.Render(want)

	s.Render(make([]float64, 2*333))
	s.Reset()

	got := make([]float64, 2*500)
	s.Render(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("after Reset (-want +got):\n%s", diff)
	}
}

func TestNewSynthInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chip.SampleRate = -44100
	if _, err := NewSynth(cfg); !errors.Is(err, psg.ErrInvalidConfig) {
		t.Fatalf("NewSynth() = %v, want ErrInvalidConfig", err)
	}
}
