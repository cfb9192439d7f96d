package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeLayout is fixed width so created_at sorts lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DefaultListLimit is used when List is called with a non-positive limit
const DefaultListLimit = 20

// Job is the record of one batch run
type Job struct {
	ID        string        `json:"id"`
	FileName  string        `json:"file_name"`
	Language  string        `json:"language"`
	Provider  string        `json:"provider"`
	InputRows int           `json:"input_rows"`
	Processed int           `json:"processed"`
	Dropped   int           `json:"dropped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store persists jobs in a SQLite database
type Store struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

// Open opens the database at dbPath, creating it and its directory if
// needed, and applies pending migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("make db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, sq: sq.StatementBuilder}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a job. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, job Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}

	q := s.sq.Insert("jobs").
		Columns("id", "file_name", "language", "provider", "input_rows", "processed", "dropped", "failed", "duration_ms", "created_at").
		Values(job.ID, job.FileName, job.Language, job.Provider, job.InputRows, job.Processed, job.Dropped, job.Failed,
			job.Duration.Milliseconds(), job.CreatedAt.UTC().Format(timeLayout))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("record job %s: %w", job.ID, err)
	}
	return nil
}

// List returns the most recent jobs, newest first
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	q := s.sq.Select("id", "file_name", "language", "provider", "input_rows", "processed", "dropped", "failed", "duration_ms", "created_at").
		From("jobs").
		OrderBy("created_at DESC", "rowid DESC").
		Limit(uint64(limit))
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var j Job
		var durationMs int64
		var created string
		if err := rows.Scan(&j.ID, &j.FileName, &j.Language, &j.Provider, &j.InputRows, &j.Processed, &j.Dropped, &j.Failed, &durationMs, &created); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		j.Duration = time.Duration(durationMs) * time.Millisecond
		j.CreatedAt, _ = time.Parse(timeLayout, created)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL UNIQUE,
        applied_at TEXT NOT NULL
    )`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var n int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE name = ?`, name).Scan(&n)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		b, err := migrationsFS.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_migrations(name, applied_at) VALUES (?, ?)`, name, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
	}
	return nil
}
