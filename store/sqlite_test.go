//go:build sqlite

package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stevegt/sinenet"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "sinenet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	first := testRun(t)
	second := testRun(t)
	second.Created = first.Created.Add(time.Second)
	second.Loss = math.NaN()
	for _, run := range []Run{second, first} {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run: %v", err)
		}
	}

	loaded, ok, err := store.GetRun(ctx, first.ID)
	if err != nil || !ok {
		t.Fatalf("get run: ok=%v err=%v", ok, err)
	}
	if loaded.Shape != first.Shape || loaded.State != first.State || loaded.Iteration != first.Iteration {
		t.Fatalf("loaded run mismatch: %+v", loaded)
	}
	if loaded.Loss != first.Loss || loaded.Eta != first.Eta {
		t.Fatalf("loaded loss/eta mismatch: %v %v", loaded.Loss, loaded.Eta)
	}
	if !loaded.Created.Equal(first.Created) {
		t.Fatalf("created mismatch: %v vs %v", loaded.Created, first.Created)
	}
	for i := range first.Weights {
		if loaded.Weights[i] != first.Weights[i] || loaded.Outputs[i] != first.Outputs[i] {
			t.Fatalf("vector mismatch at %d", i)
		}
	}

	if _, ok, err := store.GetRun(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing run: ok=%v err=%v", ok, err)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first.ID || runs[1].ID != second.ID {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	if !math.IsNaN(runs[1].Loss) {
		t.Fatalf("expected NaN loss, got %v", runs[1].Loss)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db"))
	if err := store.SaveRun(context.Background(), Run{ID: "x"}); err == nil {
		t.Fatal("expected error before init")
	}
	if err := NewSQLiteStore("").Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func TestSQLiteStoreDivergedRun(t *testing.T) {
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "sinenet.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := sinenet.DefaultConfig()
	cfg.Seed = 3
	cfg.Eta = 1e300
	cfg.MaxIter = 50
	tr, err := sinenet.NewTrainer(cfg)
	if err != nil {
		t.Fatalf("new trainer: %v", err)
	}
	run := NewRun("(diverged)", tr.Run())
	if !math.IsNaN(run.Loss) && !math.IsInf(run.Loss, 0) {
		t.Fatalf("expected a diverged loss, got %v", run.Loss)
	}

	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save diverged run: %v", err)
	}
	loaded, ok, err := store.GetRun(ctx, run.ID)
	if err != nil || !ok {
		t.Fatalf("get run: ok=%v err=%v", ok, err)
	}
	if !sameFloat(loaded.Loss, run.Loss) {
		t.Fatalf("loss mismatch: %v vs %v", loaded.Loss, run.Loss)
	}
	if len(loaded.Weights) != len(run.Weights) || len(loaded.Outputs) != len(run.Outputs) {
		t.Fatalf("vector length mismatch: %d/%d weights, %d/%d outputs",
			len(loaded.Weights), len(run.Weights), len(loaded.Outputs), len(run.Outputs))
	}
	for i := range run.Weights {
		if !sameFloat(loaded.Weights[i], run.Weights[i]) {
			t.Fatalf("weight %d: %v vs %v", i, loaded.Weights[i], run.Weights[i])
		}
	}
	for i := range run.Outputs {
		if !sameFloat(loaded.Outputs[i], run.Outputs[i]) {
			t.Fatalf("output %d: %v vs %v", i, loaded.Outputs[i], run.Outputs[i])
		}
	}
}
