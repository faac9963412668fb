// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/report"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so text order in SQLite matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// Store wraps SQLite access for saved reports and run history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			name TEXT PRIMARY KEY COLLATE NOCASE,
			payload TEXT NOT NULL,
			column_count INTEGER NOT NULL,
			filter_count INTEGER NOT NULL,
			parameter_count INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			report_name TEXT NOT NULL COLLATE NOCASE,
			ran_at TEXT NOT NULL,
			total_rows INTEGER NOT NULL,
			matched_rows INTEGER NOT NULL,
			parameters TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reports_updated_at ON reports(updated_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_report_name ON runs(report_name, ran_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save inserts or replaces the report stored under doc.Name.
func (s *Store) Save(ctx context.Context, doc report.Document) error {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		return fmt.Errorf("%w: report name is empty", model.ErrValidationFailed)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	now := formatTime(s.now())
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (name, payload, column_count, filter_count, parameter_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			name = excluded.name,
			payload = excluded.payload,
			column_count = excluded.column_count,
			filter_count = excluded.filter_count,
			parameter_count = excluded.parameter_count,
			updated_at = excluded.updated_at`,
		name, string(payload), len(doc.Columns), len(doc.Filters), len(doc.Parameters), now, now,
	)
	return err
}

// Load returns the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (report.Document, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM reports WHERE name = ?`, strings.TrimSpace(name)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Document{}, fmt.Errorf("%w: %q", model.ErrReportNotFound, name)
	}
	if err != nil {
		return report.Document{}, err
	}
	var doc report.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return report.Document{}, fmt.Errorf("failed to decode report %q: %w", name, err)
	}
	return doc, nil
}

// List returns summaries of every saved report, most recently updated first.
func (s *Store) List(ctx context.Context) ([]model.ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, column_count, filter_count, parameter_count, updated_at
		 FROM reports
		 ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ReportSummary
	for rows.Next() {
		var sum model.ReportSummary
		var updatedAt string
		if err := rows.Scan(&sum.Name, &sum.Columns, &sum.Filters, &sum.Parameters, &updatedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
		if err != nil {
			return nil, err
		}
		sum.UpdatedAt = parsed
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Rename moves a report and its run history to a new name.
func (s *Store) Rename(ctx context.Context, oldName, newName string) (err error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: report name is empty", model.ErrValidationFailed)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	var payload string
	err = tx.QueryRowContext(ctx, `SELECT payload FROM reports WHERE name = ?`, oldName).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", model.ErrReportNotFound, oldName)
	}
	if err != nil {
		return err
	}
	if !strings.EqualFold(oldName, newName) {
		var n int
		if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE name = ?`, newName).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %q", model.ErrReportExists, newName)
		}
	}

	var doc report.Document
	if err = json.Unmarshal([]byte(payload), &doc); err != nil {
		return fmt.Errorf("failed to decode report %q: %w", oldName, err)
	}
	doc.Name = newName
	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`UPDATE reports SET name = ?, payload = ?, updated_at = ? WHERE name = ?`,
		newName, string(updated), formatTime(s.now()), oldName,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE runs SET report_name = ? WHERE report_name = ?`, newName, oldName); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a report and its run history.
func (s *Store) Delete(ctx context.Context, name string) (err error) {
	name = strings.TrimSpace(name)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = fmt.Errorf("%w: %q", model.ErrReportNotFound, name)
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE report_name = ?`, name); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertRun records a completed run and returns its id.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord) (int64, error) {
	params := run.Parameters
	if params == nil {
		params = map[string]string{}
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run parameters: %w", err)
	}
	ranAt := run.RanAt
	if ranAt.IsZero() {
		ranAt = s.now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (report_name, ran_at, total_rows, matched_rows, parameters)
		 VALUES (?, ?, ?, ?, ?)`,
		run.Report, formatTime(ranAt), run.Total, run.Matched, string(encoded),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs newest first. A blank name lists every report's runs;
// limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, name string, limit int) ([]model.RunRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if name = strings.TrimSpace(name); name != "" {
		clauses = append(clauses, "report_name = ?")
		args = append(args, name)
	}
	query := fmt.Sprintf(`SELECT id, report_name, ran_at, total_rows, matched_rows, parameters
		FROM runs
		WHERE %s
		ORDER BY ran_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var ranAt, params string
		if err := rows.Scan(&run.ID, &run.Report, &ranAt, &run.Total, &run.Matched, &params); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, ranAt)
		if err != nil {
			return nil, err
		}
		run.RanAt = parsed
		if err := json.Unmarshal([]byte(params), &run.Parameters); err != nil {
			return nil, fmt.Errorf("failed to decode run parameters: %w", err)
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
