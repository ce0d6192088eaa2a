package sinenet

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/dustin/go-humanize"
	. "github.com/stevegt/goadapt"
	"github.com/stevegt/sinenet/trace"
)

// State is the state of a training run.
type State int

const (
	Running State = iota
	ConvergedEarly
	BudgetExhausted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ConvergedEarly:
		return "converged"
	case BudgetExhausted:
		return "exhausted"
	}
	return Spf("state(%d)", int(s))
}

// TrainingState is the mutable state of a run.  A Trainer owns it
// exclusively until the run ends.
type TrainingState struct {
	Weights   []float64
	Rate      Rate
	Loss      float64 // loss of the most recent iteration
	PrevLoss  float64 // loss of the iteration before it; 0 at start
	Iteration int
	State     State
}

// Trainer fits the network weights to the samples by batch gradient
// descent.
type Trainer struct {
	TrainingState
	Config     Config
	Samples    *Samples
	Trace      *trace.Trace // optional; receives every iteration
	activation Func
	lo, hi     int       // center window of the forward sum
	outputs    []float64 // reused every iteration
	gradient   []float64 // reused every iteration
	started    bool
}

// NewTrainer validates cfg and builds a trainer with freshly sampled
// data and initial weights drawn from cfg.Seed.
func NewTrainer(cfg Config) (t *Trainer, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}
	target := funcs[cfg.Target]
	rng := rand.New(rand.NewSource(cfg.Seed))
	samples, weights, err := NewSamples(cfg.K, cfg.N, rng, target)
	if err != nil {
		return
	}
	t = &Trainer{
		Config:     cfg,
		Samples:    samples,
		activation: funcs[cfg.Activation],
		outputs:    make([]float64, sampleCount(cfg.Window, cfg.K)),
		gradient:   make([]float64, len(samples.Centers)),
	}
	t.lo, t.hi = centerRange(cfg.Window, len(samples.Centers))
	t.Weights = weights
	t.Rate = NewRate(cfg.Eta, cfg.C)
	t.State = Running
	return
}

// SetWeights replaces the initial weights.  It may only be called
// before the first step.
func (t *Trainer) SetWeights(weights []float64) {
	Assert(!t.started, "run already started")
	Assert(len(weights) == len(t.Weights), "expected %d weights, got %d", len(t.Weights), len(weights))
	copy(t.Weights, weights)
}

// Outputs returns the output buffer of the most recent iteration.
// The slice is reused by the next Step.
func (t *Trainer) Outputs() []float64 {
	return t.outputs
}

// Gradient returns the gradient buffer of the most recent iteration.
// The slice is reused by the next Step.
func (t *Trainer) Gradient() []float64 {
	return t.gradient
}

// Step runs one training iteration and returns the resulting state.
// When the loss falls below eps, the weight step for that iteration
// is withheld so the weights still match the returned outputs.  The
// rate control still runs.  A run that converges on its first
// iteration therefore ends with its initial weights, where an
// update-then-check loop would have moved them once more.
func (t *Trainer) Step() State {
	Assert(t.State == Running, "step on finished run: %v", t.State)
	t.started = true
	s := t.Samples

	for i := range t.outputs {
		t.outputs[i] = evaluate(t.Weights, s.Centers, t.activation, s.Inputs[i], t.lo, t.hi)
	}
	t.Loss = Loss(t.outputs, s.Targets)
	for j, center := range s.Centers {
		t.gradient[j] = Gradient(t.outputs, s.Targets, s.Inputs, t.activation, center)
	}
	converged := t.Loss < t.Config.Eps
	if !converged {
		Update(t.Weights, t.gradient, t.Rate.Value)
	}
	t.Rate.Observe(t.Loss, t.PrevLoss)

	if t.Trace != nil {
		t.Trace.Add(t.Iteration, t.Loss, t.Rate.Value, t.Weights)
	}
	if t.Config.Verbose && t.Config.LogEvery > 0 && t.Iteration%t.Config.LogEvery == 0 {
		t.logProgress()
	}

	if converged {
		t.State = ConvergedEarly
		return t.State
	}
	t.PrevLoss = t.Loss
	t.Iteration++
	if t.Iteration == t.Config.MaxIter {
		t.State = BudgetExhausted
	}
	return t.State
}

// Run steps until the loss drops below eps or the iteration budget
// is used up.  A diverging run is not an error; it shows up in the
// result's loss and state.
func (t *Trainer) Run() (res *Result) {
	for t.State == Running {
		t.Step()
	}
	if t.Config.Verbose {
		t.logProgress()
	}
	return t.Result()
}

func (t *Trainer) logProgress() {
	Pf("%-9s iteration %s loss %.6g eta %.6g\n", t.State, humanize.Comma(int64(t.Iteration)), t.Loss, t.Rate.Value)
}

// Result returns a copy of the trainer's terminal output.
func (t *Trainer) Result() (res *Result) {
	res = &Result{
		State:     t.State,
		Iteration: t.Iteration,
		Loss:      t.Loss,
		Eta:       t.Rate.Value,
		Decays:    t.Rate.Decays,
		Weights:   append([]float64(nil), t.Weights...),
		Outputs:   append([]float64(nil), t.outputs...),
		Targets:   append([]float64(nil), t.Samples.Targets[:len(t.outputs)]...),
		Inputs:    append([]float64(nil), t.Samples.Inputs[:len(t.outputs)]...),
	}
	res.Network = &Network{
		Name:       Spf("%s~%s", t.Config.Activation, t.Config.Target),
		Activation: t.Config.Activation,
		Window:     t.Config.Window,
		Centers:    append([]float64(nil), t.Samples.Centers...),
		Weights:    append([]float64(nil), t.Weights...),
	}
	Ck(res.Network.init())
	return
}

// Result is the terminal output of a training run.
type Result struct {
	State     State
	Iteration int
	Loss      float64
	Eta       float64
	Decays    int
	Weights   []float64
	Outputs   []float64 // learned outputs of the last iteration
	Targets   []float64 // targets for the same samples as Outputs
	Inputs    []float64 // inputs for the same samples as Outputs
	Network   *Network
}

// Validate checks that every learned output is within maxCost of its
// target.
func (r *Result) Validate(maxCost float64) error {
	for i, out := range r.Outputs {
		if !(math.Abs(out-r.Targets[i]) <= maxCost) {
			return fmt.Errorf("cost too high for input: %v, expected: %v, got: %v", r.Inputs[i], r.Targets[i], out)
		}
	}
	return nil
}
