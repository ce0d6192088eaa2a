package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stevegt/sinenet"
)

// Run is the persisted outcome of one training run.
type Run struct {
	ID        string
	Created   time.Time
	Shape     string // configuration in shape form
	State     string
	Iteration int
	Loss      float64
	Eta       float64
	Weights   []float64
	Targets   []float64
	Outputs   []float64
}

// NewRun builds a record for res under a fresh run id.
func NewRun(shape string, res *sinenet.Result) Run {
	return Run{
		ID:        uuid.NewString(),
		Created:   time.Now().UTC(),
		Shape:     shape,
		State:     res.State.String(),
		Iteration: res.Iteration,
		Loss:      res.Loss,
		Eta:       res.Eta,
		Weights:   append([]float64(nil), res.Weights...),
		Targets:   append([]float64(nil), res.Targets...),
		Outputs:   append([]float64(nil), res.Outputs...),
	}
}

// Store persists training runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
}
