package psg

import "math"

// DAC output levels, indexed by the 5-bit amplitude produced by the mixer.
// The AY only has 16 levels, each appears twice so both chips share the same
// indexing as the 32-step YM envelope.
var ayDAC = [32]float64{
	0.0, 0.0,
	0.00999465934234, 0.00999465934234,
	0.01445029373620, 0.01445029373620,
	0.02105745021740, 0.02105745021740,
	0.03070115205620, 0.03070115205620,
	0.04554818036160, 0.04554818036160,
	0.06449988555730, 0.06449988555730,
	0.10736247806500, 0.10736247806500,
	0.12658884565500, 0.12658884565500,
	0.20498970016000, 0.20498970016000,
	0.29221026932200, 0.29221026932200,
	0.37283894102400, 0.37283894102400,
	0.49253070878200, 0.49253070878200,
	0.63532463569100, 0.63532463569100,
	0.80558480201400, 0.80558480201400,
	1.0, 1.0,
}

var ymDAC = [32]float64{
	0.0, 0.0,
	0.00465400167849, 0.00772106507973,
	0.01095597772180, 0.01396201936370,
	0.01699855039290, 0.02001983672850,
	0.02436865796900, 0.02969405661330,
	0.03506523231860, 0.04039063096060,
	0.04853894865340, 0.05833524071110,
	0.06805523765930, 0.07777523460750,
	0.09251544975970, 0.11108567940800,
	0.12974746318800, 0.14848554207700,
	0.17666895552000, 0.21155107957600,
	0.24638742656600, 0.28110170138100,
	0.33373006790300, 0.40042725261300,
	0.46738384069600, 0.53443198291000,
	0.63517204547200, 0.75800717174000,
	0.87992675669500, 1.0,
}

func dacTable(v Variant) *[32]float64 {
	if v == YM {
		return &ymDAC
	}
	return &ayDAC
}

// segment is what the envelope does during one half of its cycle.
type segment uint8

const (
	slideDown segment = iota
	slideUp
	holdTop
	holdBottom
)

// Each shape is made of 2 segments. Once a slide reaches its end, the
// envelope moves on to the other segment, so shapes whose segments both slide
// repeat forever while the others end up holding.
var envelopeShapes = [16][2]segment{
	{slideDown, holdBottom}, // \___
	{slideDown, holdBottom},
	{slideDown, holdBottom},
	{slideDown, holdBottom},
	{slideUp, holdBottom}, // /___
	{slideUp, holdBottom},
	{slideUp, holdBottom},
	{slideUp, holdBottom},
	{slideDown, slideDown},  // \\\\
	{slideDown, holdBottom}, // \___
	{slideDown, slideUp},    // \/\/
	{slideDown, holdTop},    // \```
	{slideUp, slideUp},      // ////
	{slideUp, holdTop},      // /```
	{slideUp, slideDown},    // /\/\
	{slideUp, holdBottom},   // /___
}

// ShapeFlags decodes an envelope shape register value into the 4 control
// bits of the chip.
type ShapeFlags struct {
	Continue  bool
	Attack    bool
	Alternate bool
	Hold      bool
}

func DecodeShape(shape uint8) ShapeFlags {
	return ShapeFlags{
		Continue:  shape&0x08 != 0,
		Attack:    shape&0x04 != 0,
		Alternate: shape&0x02 != 0,
		Hold:      shape&0x01 != 0,
	}
}

const (
	decimateFactor = 8   // oversampling factor
	firSize        = 192 // decimation filter length
	dcFilterSize   = 1024

	// maxStep bounds the chip ticks per oversampled sample, and hence the
	// work done by Advance.
	maxStep = 1 << 12
)

// firTaps is the low-pass filter applied when decimating the oversampled
// signal: a Blackman windowed sinc with its cutoff at the output Nyquist
// frequency. Tap 0 is unused, the filter is symmetric around firSize/2 and
// every 8th tap from the center is zero. Taps sum to 1.
var firTaps = func() [firSize]float64 {
	const half = firSize / 2

	var taps [firSize]float64
	sum := 0.0
	for k := 1; k < firSize; k++ {
		n := k - half
		switch {
		case n == 0:
			taps[k] = 1.0 / decimateFactor
		case n%decimateFactor == 0:
			taps[k] = 0
		default:
			arg := math.Pi * float64(n) / decimateFactor
			sinc := math.Sin(arg) / arg / decimateFactor
			w := 0.42 + 0.5*math.Cos(math.Pi*float64(n)/half) + 0.08*math.Cos(2*math.Pi*float64(n)/half)
			taps[k] = sinc * w
		}
		sum += taps[k]
	}
	for k := range taps {
		taps[k] /= sum
	}
	return taps
}()
