package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const schemaRuns = `
CREATE TABLE IF NOT EXISTS charchain_runs (
    run_id        INTEGER PRIMARY KEY,
    created_at    TEXT NOT NULL,
    window_length INTEGER NOT NULL,
    corpus_source TEXT NOT NULL,
    seed_text     TEXT NOT NULL,
    target_length INTEGER NOT NULL,
    random_seed   INTEGER,
    output_text   TEXT NOT NULL
);
`

const schemaRunsIndex = `CREATE INDEX IF NOT EXISTS idx_charchain_runs_created_at ON charchain_runs(created_at);`

// Run is a single recorded generation.
type Run struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	WindowLength int       `json:"window_length"`
	CorpusSource string    `json:"corpus_source"`
	Seed         string    `json:"seed"`
	TargetLength int       `json:"target_length"`
	RandomSeed   *int64    `json:"random_seed,omitempty"` // nil when the run was not reproducible
	Output       string    `json:"output"`
}

// Summary holds aggregated statistics over all recorded runs.
type Summary struct {
	TotalRuns      int64 `json:"total_runs"`
	GeneratedChars int64 `json:"generated_chars"` // Output length beyond the seed, summed over all runs
}

// SetupSchema initializes the run table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}
	if _, err = tx.Exec(schemaRunsIndex); err != nil {
		return fmt.Errorf("could not create runs index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store holds the database connection and prepared statements for the run log.
type Store struct {
	db            *sql.DB
	stmtInsertRun *sql.Stmt
	stmtRecent    *sql.Stmt
	stmtSummary   *sql.Stmt
	logger        *slog.Logger
}

// NewStore creates a Store over db, which must already have the schema set
// up. It pre-compiles all SQL statements, returning an error if any
// preparation fails.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsertRun, err := db.Prepare(`INSERT INTO charchain_runs (created_at, window_length, corpus_source, seed_text, target_length, random_seed, output_text) VALUES (?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtRecent, err := db.Prepare(`SELECT run_id, created_at, window_length, corpus_source, seed_text, target_length, random_seed, output_text FROM charchain_runs ORDER BY run_id DESC LIMIT ?;`)
	if err != nil {
		_ = stmtInsertRun.Close()
		return nil, err
	}

	stmtSummary, err := db.Prepare(`SELECT COUNT(*), coalesce(SUM(length(output_text) - length(seed_text)), 0) FROM charchain_runs;`)
	if err != nil {
		_ = stmtInsertRun.Close()
		_ = stmtRecent.Close()
		return nil, err
	}

	return &Store{
		db:            db,
		stmtInsertRun: stmtInsertRun,
		stmtRecent:    stmtRecent,
		stmtSummary:   stmtSummary,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the Store. The
// database itself is left open.
func (s *Store) Close() {
	_ = s.stmtInsertRun.Close()
	_ = s.stmtRecent.Close()
	_ = s.stmtSummary.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Record inserts run and returns its new ID. A zero CreatedAt is replaced
// with the current time.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	var randomSeed sql.NullInt64
	if run.RandomSeed != nil {
		randomSeed = sql.NullInt64{Int64: *run.RandomSeed, Valid: true}
	}

	res, err := s.stmtInsertRun.ExecContext(ctx,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.WindowLength,
		run.CorpusSource,
		run.Seed,
		run.TargetLength,
		randomSeed,
		run.Output,
	)
	if err != nil {
		return 0, fmt.Errorf("could not record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not read recorded run id: %w", err)
	}

	s.logger.DebugContext(ctx, "Run recorded",
		slog.Int64("run_id", id),
		slog.String("corpus_source", run.CorpusSource),
		slog.Int("window_length", run.WindowLength),
	)
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.stmtRecent.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query recent runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var randomSeed sql.NullInt64
		if err = rows.Scan(&run.ID, &createdAt, &run.WindowLength, &run.CorpusSource, &run.Seed, &run.TargetLength, &randomSeed, &run.Output); err != nil {
			return nil, err
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad timestamp %q on run %d: %w", createdAt, run.ID, err)
		}
		if randomSeed.Valid {
			seed := randomSeed.Int64
			run.RandomSeed = &seed
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Summary returns aggregated statistics over all recorded runs.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	if err := s.stmtSummary.QueryRowContext(ctx).Scan(&summary.TotalRuns, &summary.GeneratedChars); err != nil {
		return Summary{}, fmt.Errorf("could not summarize runs: %w", err)
	}
	return summary, nil
}
