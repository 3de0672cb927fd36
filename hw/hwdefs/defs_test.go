package hwdefs

import "testing"

func TestClockPresets(t *testing.T) {
	for _, name := range ClockPresetNames() {
		hz, ok := ClockPreset(name)
		if !ok || hz <= 0 {
			t.Errorf("ClockPreset(%q) = %v, %t", name, hz, ok)
		}
	}

	if hz, ok := ClockPreset("ZX"); !ok || hz != ClockZXSpectrum {
		t.Errorf("ClockPreset(\"ZX\") = %v, %t, want %v", hz, ok, ClockZXSpectrum)
	}
	if _, ok := ClockPreset("c64"); ok {
		t.Errorf("ClockPreset(\"c64\") should not exist")
	}
}
