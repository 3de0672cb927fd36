package snapshot

const (
	NumToneChannels = 3
	FIRBufferSize   = 2 * 192
	DCFilterSize    = 1024
)

// PSG holds the complete mutable state of a psg.PSG, along with the
// configuration it was built with.
type PSG struct {
	Variant    uint8
	ClockRate  float64
	SampleRate int

	Channels [NumToneChannels]ToneChannel
	Noise    Noise
	Envelope Envelope

	X           float64
	InterpLeft  Interpolator
	InterpRight Interpolator
	FIRLeft     [FIRBufferSize]float64
	FIRRight    [FIRBufferSize]float64
	FIRIndex    int
	DCLeft      DCFilter
	DCRight     DCFilter
	DCIndex     int

	Left  float64
	Right float64
}

type ToneChannel struct {
	Period     int
	Counter    int
	Tone       int
	ToneOff    bool
	NoiseOff   bool
	EnvelopeOn bool
	Volume     int
	PanLeft    float64
	PanRight   float64
}

type Noise struct {
	Period  int
	Counter int
	LFSR    uint32
}

type Envelope struct {
	Period  int
	Counter int
	Shape   int
	Segment int
	Value   int
}

type Interpolator struct {
	C [3]float64
	Y [4]float64
}

type DCFilter struct {
	Sum   float64
	Delay [DCFilterSize]float64
}
