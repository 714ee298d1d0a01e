package runlog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestStore creates a new SQLite database in a temp dir and a Store for testing.
// It uses t.Cleanup to ensure resources are released.
func setupTestStore(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "runs.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

func TestSetupSchemaIdempotent(t *testing.T) {
	db, _ := setupTestStore(t)
	if err := SetupSchema(db); err != nil {
		t.Errorf("second SetupSchema call failed: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	seed := int64(42)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []Run{
		{CreatedAt: base, WindowLength: 3, CorpusSource: "a.txt", Seed: "abc", TargetLength: 5, RandomSeed: &seed, Output: "abcabcab"},
		{CreatedAt: base.Add(time.Minute), WindowLength: 1, CorpusSource: "b.txt", Seed: "a", TargetLength: 3, Output: "aaaa"},
		{CreatedAt: base.Add(2 * time.Minute), WindowLength: 2, CorpusSource: "-", Seed: "xy", TargetLength: 10, Output: "xy"},
	}
	for i, run := range runs {
		id, err := s.Record(ctx, run)
		if err != nil {
			t.Fatalf("Record(%d) failed: %v", i, err)
		}
		if id <= 0 {
			t.Errorf("Record(%d) returned id %d", i, id)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if recent[0].CorpusSource != "-" || recent[1].CorpusSource != "b.txt" {
		t.Errorf("runs not returned newest first: %+v", recent)
	}
	if !recent[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", recent[0].CreatedAt, base.Add(2*time.Minute))
	}
	if recent[1].RandomSeed != nil {
		t.Errorf("expected nil random seed, got %d", *recent[1].RandomSeed)
	}

	all, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	oldest := all[len(all)-1]
	if oldest.RandomSeed == nil || *oldest.RandomSeed != 42 {
		t.Errorf("expected random seed 42 on oldest run, got %v", oldest.RandomSeed)
	}
	if oldest.Output != "abcabcab" || oldest.TargetLength != 5 || oldest.WindowLength != 3 {
		t.Errorf("unexpected oldest run: %+v", oldest)
	}

	none, err := s.Recent(ctx, 0)
	if err != nil || none != nil {
		t.Errorf("Recent(0) = %v, %v; want nil, nil", none, err)
	}
}

func TestRecordDefaultsCreatedAt(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	if _, err := s.Record(ctx, Run{WindowLength: 1, CorpusSource: "x", Seed: "a", Output: "ab"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	runs, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if runs[0].CreatedAt.Before(before) {
		t.Errorf("expected CreatedAt to default to now, got %v", runs[0].CreatedAt)
	}
}

func TestSummary(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	summary, err := s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary != (Summary{}) {
		t.Errorf("expected empty summary, got %+v", summary)
	}

	_, _ = s.Record(ctx, Run{WindowLength: 3, CorpusSource: "a", Seed: "abc", Output: "abcabcab"})
	_, _ = s.Record(ctx, Run{WindowLength: 1, CorpusSource: "a", Seed: "日", Output: "日本語"})

	summary, err = s.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	want := Summary{TotalRuns: 2, GeneratedChars: 5 + 2}
	if summary != want {
		t.Errorf("Summary() = %+v, want %+v", summary, want)
	}
}
