package sinenet

import (
	. "github.com/stevegt/goadapt"
	"gonum.org/v1/gonum/floats"
)

// Evaluate returns the network output for x.  The sum runs over
// centers 1 through len(centers)-2; the first and last centers never
// contribute.
func Evaluate(weights, centers []float64, activation Func, x float64) float64 {
	lo, hi := centerRange(WindowOriginal, len(centers))
	return evaluate(weights, centers, activation, x, lo, hi)
}

func evaluate(weights, centers []float64, activation Func, x float64, lo, hi int) (sum float64) {
	Assert(len(weights) == len(centers), "weights %d centers %d", len(weights), len(centers))
	for j := lo; j < hi; j++ {
		sum += weights[j] * activation(x-centers[j])
	}
	return
}

// centerRange returns the half-open range of center indices that take
// part in the forward sum.
func centerRange(window string, count int) (lo, hi int) {
	if window == WindowFull {
		return 0, count
	}
	lo, hi = 1, count-1
	if hi < lo {
		hi = lo
	}
	return
}

// sampleCount returns how many leading training samples take part in
// the loss and gradient sums.
func sampleCount(window string, k int) int {
	if window == WindowFull {
		return k
	}
	return k - 1
}

// Loss returns the sum of squared errors between outputs and targets
// over the first len(outputs) samples.  targets may be longer than
// outputs; the extra entries are never read.
func Loss(outputs, targets []float64) (sum float64) {
	Assert(len(targets) >= len(outputs), "outputs %d targets %d", len(outputs), len(targets))
	for i, out := range outputs {
		d := out - targets[i]
		sum += d * d
	}
	return
}

// Gradient returns the partial derivative of the loss with respect to
// the weight attached to center.  The network is linear in each
// weight, so this is exact for centers inside the forward window.
// Boundary centers still get a nonzero value here even though their
// weights never reach the output.
func Gradient(outputs, targets, inputs []float64, activation Func, center float64) float64 {
	Assert(len(targets) >= len(outputs), "outputs %d targets %d", len(outputs), len(targets))
	Assert(len(inputs) >= len(outputs), "outputs %d inputs %d", len(outputs), len(inputs))
	sum := 0.0
	for i, out := range outputs {
		sum += (out - targets[i]) * activation(inputs[i]-center)
	}
	return sum * 2
}

// Update applies one batch gradient-descent step in place:
// weights[i] -= rate * gradient[i].
func Update(weights, gradient []float64, rate float64) {
	Assert(len(weights) == len(gradient), "weights %d gradient %d", len(weights), len(gradient))
	floats.AddScaled(weights, -rate, gradient)
}
