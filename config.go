// Package sinenet fits a single-hidden-layer network, a weighted sum
// of shifted activation functions, to a scalar target function by
// batch gradient descent with an adaptive learning rate.
package sinenet

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every configuration error returned
// by Validate, NewSamples, and NewTrainer.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// WindowOriginal skips the first and last center in the forward
	// sum, and the last training sample in the loss and gradient sums.
	WindowOriginal = "original"
	// WindowFull uses every center and every training sample.  This
	// is an alternate configuration, never the default.
	WindowFull = "full"
)

// Config holds the parameters of a training run.
type Config struct {
	K          int     // training sample count
	N          int     // center count is N-1
	MaxIter    int     // iteration budget
	Eta        float64 // initial learning rate
	Eps        float64 // early-stop threshold on the loss
	C          float64 // learning-rate decay divisor
	Seed       int64
	Activation string
	Target     string
	Window     string
	Verbose    bool
	LogEvery   int // progress line interval when Verbose
}

// DefaultConfig returns the stock configuration, seeded from the wall
// clock.
func DefaultConfig() Config {
	return Config{
		K:          20,
		N:          20,
		MaxIter:    20000,
		Eta:        0.01,
		Eps:        0.001,
		C:          2,
		Seed:       time.Now().UnixNano(),
		Activation: "tanh",
		Target:     "sin",
		Window:     WindowOriginal,
		LogEvery:   1000,
	}
}

// Validate checks the configuration before any training starts.
func (cfg Config) Validate() error {
	switch {
	case cfg.K < 2:
		return errors.Wrapf(ErrInvalidConfig, "k must be at least 2, got %d", cfg.K)
	case cfg.N < 2:
		return errors.Wrapf(ErrInvalidConfig, "n must be at least 2, got %d", cfg.N)
	case cfg.MaxIter < 1:
		return errors.Wrapf(ErrInvalidConfig, "maxIter must be at least 1, got %d", cfg.MaxIter)
	case !(cfg.Eta > 0):
		return errors.Wrapf(ErrInvalidConfig, "eta must be positive, got %v", cfg.Eta)
	case !(cfg.Eps >= 0):
		return errors.Wrapf(ErrInvalidConfig, "eps must not be negative, got %v", cfg.Eps)
	case !(cfg.C > 1):
		return errors.Wrapf(ErrInvalidConfig, "C must be greater than 1, got %v", cfg.C)
	case cfg.LogEvery < 0:
		return errors.Wrapf(ErrInvalidConfig, "logEvery must not be negative, got %d", cfg.LogEvery)
	}
	if _, ok := funcs[cfg.Activation]; !ok {
		return errors.Wrapf(ErrInvalidConfig, "unknown activation function: %q", cfg.Activation)
	}
	if _, ok := funcs[cfg.Target]; !ok {
		return errors.Wrapf(ErrInvalidConfig, "unknown target function: %q", cfg.Target)
	}
	if cfg.Window != WindowOriginal && cfg.Window != WindowFull {
		return errors.Wrapf(ErrInvalidConfig, "unknown window: %q", cfg.Window)
	}
	return nil
}
