package psg

// dcFilter removes the DC offset by subtracting the mean of the last
// dcFilterSize samples.
type dcFilter struct {
	sum   float64
	delay [dcFilterSize]float64
}

func (dc *dcFilter) apply(index int, x float64) float64 {
	dc.sum += x - dc.delay[index]
	dc.delay[index] = x
	return x - dc.sum/dcFilterSize
}
