package psg

// interpolator reconstructs the signal between two mixer updates from the last
// 4 of them, with a second order polynomial.
type interpolator struct {
	c [3]float64
	y [4]float64
}

func (it *interpolator) push(v float64) {
	it.y[0], it.y[1], it.y[2] = it.y[1], it.y[2], it.y[3]
	it.y[3] = v

	d := it.y[2] - it.y[0]
	it.c[0] = 0.5*it.y[1] + 0.25*(it.y[0]+it.y[2])
	it.c[1] = 0.5 * d
	it.c[2] = 0.25 * (it.y[3] - it.y[1] - d)
}

// at evaluates the polynomial at x in [0, 1).
func (it *interpolator) at(x float64) float64 {
	return (it.c[2]*x+it.c[1])*x + it.c[0]
}
