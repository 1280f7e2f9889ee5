package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/banshee-data/flatland/internal/shadow"
	"github.com/banshee-data/flatland/internal/timeutil"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned by RunStore.Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run is one computed shadow total together with the disjoint spans that
// produced it.
type Run struct {
	RunID         string            `json:"run_id"`
	Source        string            `json:"source"`
	AngleDegrees  float64           `json:"angle_degrees"`
	ObstacleCount int               `json:"obstacle_count"`
	TotalLength   float64           `json:"total_length"`
	Spans         []shadow.Interval `json:"spans,omitempty"`
	CreatedAt     int64             `json:"created_at"`
}

// RunStore provides persistence for shadow runs.
type RunStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewRunStore creates a RunStore using the real clock.
func NewRunStore(db *DB) *RunStore {
	return NewRunStoreWithClock(db, timeutil.RealClock{})
}

// NewRunStoreWithClock creates a RunStore stamping runs with clock.
func NewRunStoreWithClock(db *DB, clock timeutil.Clock) *RunStore {
	return &RunStore{db: db.DB, clock: clock}
}

// Insert persists a run and its spans. If RunID is empty, a UUID is
// generated; if CreatedAt is zero, the store's clock supplies it.
func (s *RunStore) Insert(run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = s.clock.Now().UnixNano()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO shadow_runs (
			run_id, source, angle_degrees, obstacle_count, total_length, created_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Source, run.AngleDegrees, run.ObstacleCount, run.TotalLength, run.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, span := range run.Spans {
		if _, err := tx.Exec(`
			INSERT INTO shadow_run_spans (run_id, span_index, left_edge, right_edge)
			VALUES (?, ?, ?, ?)`,
			run.RunID, i, span.Left, span.Right,
		); err != nil {
			return fmt.Errorf("insert span %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// Get returns a single run, spans included.
func (s *RunStore) Get(runID string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(`
		SELECT run_id, source, angle_degrees, obstacle_count, total_length, created_at
		FROM shadow_runs
		WHERE run_id = ?`, runID).Scan(
		&r.RunID, &r.Source, &r.AngleDegrees, &r.ObstacleCount, &r.TotalLength, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	spans, err := s.spans(runID)
	if err != nil {
		return nil, err
	}
	r.Spans = spans
	return &r, nil
}

// List returns up to limit runs, newest first, without their spans.
func (s *RunStore) List(limit int) ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source, angle_degrees, obstacle_count, total_length, created_at
		FROM shadow_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Source, &r.AngleDegrees, &r.ObstacleCount, &r.TotalLength, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

func (s *RunStore) spans(runID string) ([]shadow.Interval, error) {
	rows, err := s.db.Query(`
		SELECT left_edge, right_edge
		FROM shadow_run_spans
		WHERE run_id = ?
		ORDER BY span_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("query spans: %w", err)
	}
	defer rows.Close()

	var spans []shadow.Interval
	for rows.Next() {
		var iv shadow.Interval
		if err := rows.Scan(&iv.Left, &iv.Right); err != nil {
			return nil, fmt.Errorf("scan span: %w", err)
		}
		spans = append(spans, iv)
	}
	return spans, rows.Err()
}
