package sinenet

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Samples holds the fixed training set and center grid.  Neither is
// modified after NewSamples returns.
type Samples struct {
	Inputs  []float64 // i/k for i = 1..k
	Targets []float64 // target(Inputs[i])
	Centers []float64 // j/n for j = 0..n-2
}

// NewSamples builds the training set of k pairs and the center grid
// of n-1 centers, and draws n-1 initial weights uniformly from [0,1)
// using rng.
func NewSamples(k, n int, rng *rand.Rand, target Func) (s *Samples, weights []float64, err error) {
	if k < 2 {
		return nil, nil, errors.Wrapf(ErrInvalidConfig, "k must be at least 2, got %d", k)
	}
	if n < 2 {
		return nil, nil, errors.Wrapf(ErrInvalidConfig, "n must be at least 2, got %d", n)
	}
	s = &Samples{
		Inputs:  make([]float64, k),
		Targets: make([]float64, k),
		Centers: make([]float64, n-1),
	}
	for i := 0; i < k; i++ {
		x := float64(i+1) / float64(k)
		s.Inputs[i] = x
		s.Targets[i] = target(x)
	}
	for j := range s.Centers {
		s.Centers[j] = float64(j) / float64(n)
	}
	weights = make([]float64, n-1)
	for j := range weights {
		weights[j] = rng.Float64()
	}
	return
}
