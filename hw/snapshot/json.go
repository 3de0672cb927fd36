package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// MarshalJSON implements json.Marshaler.
func (s *PSG) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *PSG) UnmarshalJSON(data []byte) error {
	return s.Decode(jx.DecodeBytes(data))
}

func (s *PSG) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("variant")
	e.UInt8(s.Variant)
	e.FieldStart("clock_rate")
	e.Float64(s.ClockRate)
	e.FieldStart("sample_rate")
	e.Int(s.SampleRate)

	e.FieldStart("channels")
	e.ArrStart()
	for i := range s.Channels {
		s.Channels[i].encode(e)
	}
	e.ArrEnd()

	e.FieldStart("noise")
	e.ObjStart()
	e.FieldStart("period")
	e.Int(s.Noise.Period)
	e.FieldStart("counter")
	e.Int(s.Noise.Counter)
	e.FieldStart("lfsr")
	e.UInt32(s.Noise.LFSR)
	e.ObjEnd()

	e.FieldStart("envelope")
	e.ObjStart()
	e.FieldStart("period")
	e.Int(s.Envelope.Period)
	e.FieldStart("counter")
	e.Int(s.Envelope.Counter)
	e.FieldStart("shape")
	e.Int(s.Envelope.Shape)
	e.FieldStart("segment")
	e.Int(s.Envelope.Segment)
	e.FieldStart("value")
	e.Int(s.Envelope.Value)
	e.ObjEnd()

	e.FieldStart("x")
	e.Float64(s.X)
	e.FieldStart("interp_left")
	s.InterpLeft.encode(e)
	e.FieldStart("interp_right")
	s.InterpRight.encode(e)
	e.FieldStart("fir_left")
	encodeFloats(e, s.FIRLeft[:])
	e.FieldStart("fir_right")
	encodeFloats(e, s.FIRRight[:])
	e.FieldStart("fir_index")
	e.Int(s.FIRIndex)
	e.FieldStart("dc_left")
	s.DCLeft.encode(e)
	e.FieldStart("dc_right")
	s.DCRight.encode(e)
	e.FieldStart("dc_index")
	e.Int(s.DCIndex)

	e.FieldStart("left")
	e.Float64(s.Left)
	e.FieldStart("right")
	e.Float64(s.Right)
	e.ObjEnd()
}

func (s *PSG) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "variant":
			s.Variant, err = d.UInt8()
		case "clock_rate":
			s.ClockRate, err = d.Float64()
		case "sample_rate":
			s.SampleRate, err = d.Int()
		case "channels":
			i := 0
			err = d.Arr(func(d *jx.Decoder) error {
				if i >= len(s.Channels) {
					return fmt.Errorf("too many channels")
				}
				i++
				return s.Channels[i-1].decode(d)
			})
		case "noise":
			err = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				var err error
				switch string(key) {
				case "period":
					s.Noise.Period, err = d.Int()
				case "counter":
					s.Noise.Counter, err = d.Int()
				case "lfsr":
					s.Noise.LFSR, err = d.UInt32()
				default:
					err = d.Skip()
				}
				return err
			})
		case "envelope":
			err = d.ObjBytes(func(d *jx.Decoder, key []byte) error {
				var err error
				switch string(key) {
				case "period":
					s.Envelope.Period, err = d.Int()
				case "counter":
					s.Envelope.Counter, err = d.Int()
				case "shape":
					s.Envelope.Shape, err = d.Int()
				case "segment":
					s.Envelope.Segment, err = d.Int()
				case "value":
					s.Envelope.Value, err = d.Int()
				default:
					err = d.Skip()
				}
				return err
			})
		case "x":
			s.X, err = d.Float64()
		case "interp_left":
			err = s.InterpLeft.decode(d)
		case "interp_right":
			err = s.InterpRight.decode(d)
		case "fir_left":
			err = decodeFloats(d, s.FIRLeft[:])
		case "fir_right":
			err = decodeFloats(d, s.FIRRight[:])
		case "fir_index":
			s.FIRIndex, err = d.Int()
		case "dc_left":
			err = s.DCLeft.decode(d)
		case "dc_right":
			err = s.DCRight.decode(d)
		case "dc_index":
			s.DCIndex, err = d.Int()
		case "left":
			s.Left, err = d.Float64()
		case "right":
			s.Right, err = d.Float64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("snapshot %q: %w", key, err)
		}
		return nil
	})
}

func (tc *ToneChannel) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("period")
	e.Int(tc.Period)
	e.FieldStart("counter")
	e.Int(tc.Counter)
	e.FieldStart("tone")
	e.Int(tc.Tone)
	e.FieldStart("tone_off")
	e.Bool(tc.ToneOff)
	e.FieldStart("noise_off")
	e.Bool(tc.NoiseOff)
	e.FieldStart("envelope_on")
	e.Bool(tc.EnvelopeOn)
	e.FieldStart("volume")
	e.Int(tc.Volume)
	e.FieldStart("pan_left")
	e.Float64(tc.PanLeft)
	e.FieldStart("pan_right")
	e.Float64(tc.PanRight)
	e.ObjEnd()
}

func (tc *ToneChannel) decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "period":
			tc.Period, err = d.Int()
		case "counter":
			tc.Counter, err = d.Int()
		case "tone":
			tc.Tone, err = d.Int()
		case "tone_off":
			tc.ToneOff, err = d.Bool()
		case "noise_off":
			tc.NoiseOff, err = d.Bool()
		case "envelope_on":
			tc.EnvelopeOn, err = d.Bool()
		case "volume":
			tc.Volume, err = d.Int()
		case "pan_left":
			tc.PanLeft, err = d.Float64()
		case "pan_right":
			tc.PanRight, err = d.Float64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (it *Interpolator) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("c")
	encodeFloats(e, it.C[:])
	e.FieldStart("y")
	encodeFloats(e, it.Y[:])
	e.ObjEnd()
}

func (it *Interpolator) decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "c":
			return decodeFloats(d, it.C[:])
		case "y":
			return decodeFloats(d, it.Y[:])
		}
		return d.Skip()
	})
}

func (dc *DCFilter) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("sum")
	e.Float64(dc.Sum)
	e.FieldStart("delay")
	encodeFloats(e, dc.Delay[:])
	e.ObjEnd()
}

func (dc *DCFilter) decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "sum":
			dc.Sum, err = d.Float64()
		case "delay":
			err = decodeFloats(d, dc.Delay[:])
		default:
			err = d.Skip()
		}
		return err
	})
}

func encodeFloats(e *jx.Encoder, vals []float64) {
	e.ArrStart()
	for _, v := range vals {
		e.Float64(v)
	}
	e.ArrEnd()
}

// decodeFloats decodes a JSON array into dst, which it must fill exactly.
func decodeFloats(d *jx.Decoder, dst []float64) error {
	n := 0
	err := d.Arr(func(d *jx.Decoder) error {
		if n >= len(dst) {
			return fmt.Errorf("more than %d values", len(dst))
		}
		v, err := d.Float64()
		if err != nil {
			return err
		}
		dst[n] = v
		n++
		return nil
	})
	if err != nil {
		return err
	}
	if n != len(dst) {
		return fmt.Errorf("got %d values, want %d", n, len(dst))
	}
	return nil
}
