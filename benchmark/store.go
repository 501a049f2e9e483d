package benchmark

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS runs (
	batch_id       TEXT    NOT NULL,
	run_index      INTEGER NOT NULL,
	nodes_explored INTEGER NOT NULL,
	attempts       INTEGER NOT NULL,
	goal_reached   INTEGER NOT NULL,
	path_length    REAL    NOT NULL,
	waypoints      INTEGER NOT NULL,
	started_ns     INTEGER NOT NULL,
	duration_ns    INTEGER NOT NULL,
	PRIMARY KEY (batch_id, run_index)
)`

// Store keeps run results in a sqlite database so batches can be compared later.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the results database at path. Use ":memory:" for a throwaway store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open results store %q", path)
	}
	// every connection to ":memory:" would otherwise see its own empty database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createRunsTable); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "cannot create runs table"), db.Close())
	}
	return &Store{db: db}, nil
}

// Record stores one run of a batch.
func (s *Store) Record(ctx context.Context, batchID string, result RunResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (batch_id, run_index, nodes_explored, attempts, goal_reached, path_length,
			waypoints, started_ns, duration_ns) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batchID, result.Index, result.NodesExplored, result.Attempts, result.GoalReached, result.PathLength,
		result.Waypoints, result.Started.UnixNano(), int64(result.Duration),
	)
	return errors.Wrapf(err, "cannot record run %d of batch %s", result.Index, batchID)
}

// Results returns the runs of a batch in run order.
func (s *Store) Results(ctx context.Context, batchID string) ([]RunResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_index, nodes_explored, attempts, goal_reached, path_length, waypoints, started_ns, duration_ns
		FROM runs WHERE batch_id = ? ORDER BY run_index`, batchID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []RunResult
	for rows.Next() {
		var (
			res        RunResult
			startedNs  int64
			durationNs int64
		)
		if err := rows.Scan(&res.Index, &res.NodesExplored, &res.Attempts, &res.GoalReached, &res.PathLength,
			&res.Waypoints, &startedNs, &durationNs); err != nil {
			return nil, err
		}
		res.Started = time.Unix(0, startedNs)
		res.Duration = time.Duration(durationNs)
		results = append(results, res)
	}
	return results, rows.Err()
}

// Batches returns the ids of every recorded batch.
func (s *Store) Batches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT batch_id FROM runs ORDER BY batch_id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
