package sinenet

// Rate is the learning rate of a run.  It starts at the configured
// eta and only ever shrinks, by division by Divisor.
type Rate struct {
	Value   float64
	Divisor float64
	Decays  int // number of times Value has been divided
}

// NewRate returns a learning rate starting at eta.
func NewRate(eta, divisor float64) Rate {
	return Rate{Value: eta, Divisor: divisor}
}

// Observe divides the rate by Divisor if loss went up relative to
// prevLoss, and reports whether it did.  The first iteration of a run
// compares against a prevLoss of 0, so it decays whenever its loss is
// nonzero.
func (r *Rate) Observe(loss, prevLoss float64) (decayed bool) {
	if loss > prevLoss {
		r.Value /= r.Divisor
		r.Decays++
		decayed = true
	}
	return
}
