//go:build sqlite

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/stevegt/sinenet"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// vectors is the payload column: the per-sample and per-weight
// series of a run.  sinenet.Vector keeps the NaN and Inf entries of a
// diverged run.
type vectors struct {
	Weights sinenet.Vector `json:"weights"`
	Targets sinenet.Vector `json:"targets"`
	Outputs sinenet.Vector `json:"outputs"`
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(vectors{Weights: run.Weights, Targets: run.Targets, Outputs: run.Outputs})
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, created, shape, state, iteration, loss, eta, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created = excluded.created,
			shape = excluded.shape,
			state = excluded.state,
			iteration = excluded.iteration,
			loss = excluded.loss,
			eta = excluded.eta,
			payload = excluded.payload
	`, run.ID, run.Created.UnixNano(), run.Shape, run.State, run.Iteration, run.Loss, run.Eta, payload)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, created, shape, state, iteration, loss, eta, payload
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	return run, true, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, created, shape, state, iteration, loss, eta, payload
		FROM runs ORDER BY created, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run       Run
		created   int64
		loss, eta sql.NullFloat64
		payload   []byte
	)
	err := row.Scan(&run.ID, &created, &run.Shape, &run.State, &run.Iteration, &loss, &eta, &payload)
	if err != nil {
		return Run{}, err
	}
	var v vectors
	if err := json.Unmarshal(payload, &v); err != nil {
		return Run{}, fmt.Errorf("decode run %s: %w", run.ID, err)
	}
	// sqlite stores NaN as NULL; a diverged run reads back as NaN
	run.Loss, run.Eta = math.NaN(), math.NaN()
	if loss.Valid {
		run.Loss = loss.Float64
	}
	if eta.Valid {
		run.Eta = eta.Float64
	}
	run.Created = time.Unix(0, created).UTC()
	run.Weights, run.Targets, run.Outputs = v.Weights, v.Targets, v.Outputs
	return run, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created INTEGER NOT NULL,
			shape TEXT NOT NULL,
			state TEXT NOT NULL,
			iteration INTEGER NOT NULL,
			loss REAL,
			eta REAL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
