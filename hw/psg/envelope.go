package psg

const envelopeMax = 31

// envelope is the 32-step volume ramp shared by the 3 channels.
type envelope struct {
	period  int
	counter int
	shape   int
	segment int
	value   int
}

func (env *envelope) setPeriod(period int) {
	env.period = max(period, 1)
}

// setShape restarts the envelope from the first segment of shape.
func (env *envelope) setShape(shape int) {
	env.shape = shape
	env.counter = 0
	env.segment = 0
	env.resetSegment()
}

func (env *envelope) resetSegment() {
	switch envelopeShapes[env.shape][env.segment] {
	case slideDown, holdTop:
		env.value = envelopeMax
	default:
		env.value = 0
	}
}

func (env *envelope) nextSegment() {
	env.segment ^= 1
	env.resetSegment()
}

func (env *envelope) tick() int {
	env.counter++
	if env.counter < env.period {
		return env.value
	}

	env.counter = 0
	switch envelopeShapes[env.shape][env.segment] {
	case slideUp:
		env.value++
		if env.value > envelopeMax {
			env.nextSegment()
		}
	case slideDown:
		env.value--
		if env.value < 0 {
			env.nextSegment()
		}
	}
	return env.value
}
