package psg

import (
	"errors"
	"fmt"
	"strings"
)

// Channel identifies one of the three tone channels.
type Channel uint8

const (
	A Channel = iota
	B
	C
)

func (ch Channel) String() string {
	switch ch {
	case A:
		return "A"
	case B:
		return "B"
	case C:
		return "C"
	}
	return fmt.Sprintf("Channel(%d)", uint8(ch))
}

// Variant selects the emulated chip, which determines the DAC curve.
type Variant uint8

const (
	AY Variant = iota // General Instrument AY-3-8910
	YM                // Yamaha YM2149
)

func (v Variant) String() string {
	switch v {
	case AY:
		return "ay"
	case YM:
		return "ym"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

func (v Variant) MarshalText() ([]byte, error) {
	if v != AY && v != YM {
		return nil, fmt.Errorf("%w: unknown chip variant %d", ErrInvalidConfig, uint8(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "ay", "ay-3-8910", "ay38910":
		*v = AY
	case "ym", "ym2149":
		*v = YM
	default:
		return fmt.Errorf("%w: unknown chip variant %q", ErrInvalidConfig, text)
	}
	return nil
}

var (
	// ErrInvalidConfig is returned when the chip cannot be built from the
	// given variant, clock rate or sample rate.
	ErrInvalidConfig = errors.New("psg: invalid configuration")

	// ErrOutOfRange is returned by setters given an argument the chip can't
	// represent. The chip state is left untouched.
	ErrOutOfRange = errors.New("psg: argument out of range")
)

// Register limits.
const (
	MaxTonePeriod     = 0xFFFF
	MaxNoisePeriod    = 0x1F
	MaxEnvelopePeriod = 0xFFFF
	MaxVolume         = 0x0F
	MaxEnvelopeShape  = 0x0F
)

func checkChannel(ch Channel) error {
	if ch > C {
		return fmt.Errorf("%w: channel %d", ErrOutOfRange, uint8(ch))
	}
	return nil
}

func checkRange(what string, val, max int) error {
	if val < 0 || val > max {
		return fmt.Errorf("%w: %s %d not in [0, %d]", ErrOutOfRange, what, val, max)
	}
	return nil
}
