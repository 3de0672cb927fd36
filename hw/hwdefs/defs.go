package hwdefs

import "strings"

const NumToneChannels = 3 // A, B, C

// Clock rates (Hz) of the PSG in common machines.
const (
	ClockZXSpectrum = 1773400
	ClockAmstradCPC = 1000000
	ClockAtariST    = 2000000
	ClockMSX        = 1789773
)

var clockPresets = map[string]float64{
	"zx":       ClockZXSpectrum,
	"cpc":      ClockAmstradCPC,
	"atari-st": ClockAtariST,
	"msx":      ClockMSX,
}

// ClockPreset returns the clock rate of the named machine. Names are case
// insensitive.
func ClockPreset(name string) (float64, bool) {
	hz, ok := clockPresets[strings.ToLower(name)]
	return hz, ok
}

// ClockPresetNames lists the accepted preset names.
func ClockPresetNames() []string {
	return []string{"zx", "cpc", "atari-st", "msx"}
}
