// Package store keeps analysis results in an SQLite database so fits of
// many spectra can be compared.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-zeeman/internal/report"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("store: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	law            TEXT NOT NULL,
	samples        INTEGER NOT NULL,
	window_samples INTEGER NOT NULL,
	cont_a         REAL NOT NULL,
	cont_b         REAL NOT NULL,
	cont_c         REAL NOT NULL,
	cont_d         REAL NOT NULL,
	cont_rss       REAL NOT NULL,
	cont_samples   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS fits (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id             TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	model              TEXT NOT NULL,
	error              TEXT NOT NULL DEFAULT '',
	shift              REAL NOT NULL DEFAULT 0,
	shift_sigma        REAL NOT NULL DEFAULT 0,
	rss                REAL NOT NULL DEFAULT 0,
	chi_square         REAL NOT NULL DEFAULT 0,
	reduced_chi_square REAL NOT NULL DEFAULT 0,
	dof                INTEGER NOT NULL DEFAULT 0,
	evaluations        INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_fits_run ON fits(run_id);
CREATE TABLE IF NOT EXISTS params (
	fit_id   INTEGER NOT NULL REFERENCES fits(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	value    REAL NOT NULL,
	sigma    REAL NOT NULL,
	PRIMARY KEY (fit_id, name)
);
`

// Store is an SQLite results database. It is safe for concurrent use.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database at path. ":memory:" opens a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer; in-memory databases also need every query on the same connection.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores doc in one transaction.
func (s *Store) Save(ctx context.Context, doc report.Document) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	c := doc.Continuum

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, source, created_at, law, samples, window_samples, cont_a, cont_b, cont_c, cont_d, cont_rss, cont_samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.RunID, doc.Source, doc.CreatedAt.UTC().Format(time.RFC3339Nano), doc.Law, doc.Samples, doc.Window,
		c.Coeffs[0], c.Coeffs[1], c.Coeffs[2], c.Coeffs[3], c.RSS, c.Samples)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range doc.Fits {
		res, err := tx.ExecContext(ctx, `INSERT INTO fits
			(run_id, model, error, shift, shift_sigma, rss, chi_square, reduced_chi_square, dof, evaluations)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.RunID, f.Model, f.Error, f.Shift, f.ShiftSigma, f.RSS, f.ChiSquare, f.ReducedChiSquare, f.DOF, f.Evaluations)
		if err != nil {
			return fmt.Errorf("insert %s fit: %w", f.Model, err)
		}

		fitID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("fit id: %w", err)
		}

		for i, p := range f.Params {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO params (fit_id, position, name, value, sigma) VALUES (?, ?, ?, ?, ?)`,
				fitID, i, p.Name, p.Value, p.Sigma)
			if err != nil {
				return fmt.Errorf("insert %s param %s: %w", f.Model, p.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Get loads the run with the given id. Regions and artifacts are not stored
// and come back zero.
func (s *Store) Get(ctx context.Context, runID string) (report.Document, error) {
	var (
		doc     report.Document
		created string
		c       = &doc.Continuum
	)

	err := s.db.QueryRowContext(ctx, `SELECT id, source, created_at, law, samples, window_samples,
		cont_a, cont_b, cont_c, cont_d, cont_rss, cont_samples FROM runs WHERE id = ?`, runID).
		Scan(&doc.RunID, &doc.Source, &created, &doc.Law, &doc.Samples, &doc.Window,
			&c.Coeffs[0], &c.Coeffs[1], &c.Coeffs[2], &c.Coeffs[3], &c.RSS, &c.Samples)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Document{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}

	if err != nil {
		return report.Document{}, fmt.Errorf("query run: %w", err)
	}

	if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return report.Document{}, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, model, error, shift, shift_sigma, rss, chi_square,
		reduced_chi_square, dof, evaluations FROM fits WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return report.Document{}, fmt.Errorf("query fits: %w", err)
	}

	var ids []int64

	for rows.Next() {
		var (
			id int64
			f  report.FitResult
		)

		if err := rows.Scan(&id, &f.Model, &f.Error, &f.Shift, &f.ShiftSigma, &f.RSS, &f.ChiSquare,
			&f.ReducedChiSquare, &f.DOF, &f.Evaluations); err != nil {
			_ = rows.Close()
			return report.Document{}, fmt.Errorf("scan fit: %w", err)
		}

		ids = append(ids, id)
		doc.Fits = append(doc.Fits, f)
	}

	if err := rows.Close(); err != nil {
		return report.Document{}, err
	}

	for i, id := range ids {
		params, err := s.params(ctx, id)
		if err != nil {
			return report.Document{}, err
		}

		doc.Fits[i].Params = params
	}

	return doc, nil
}

func (s *Store) params(ctx context.Context, fitID int64) ([]report.Param, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, value, sigma FROM params WHERE fit_id = ? ORDER BY position`, fitID)
	if err != nil {
		return nil, fmt.Errorf("query params: %w", err)
	}
	defer rows.Close()

	var out []report.Param

	for rows.Next() {
		var p report.Param
		if err := rows.Scan(&p.Name, &p.Value, &p.Sigma); err != nil {
			return nil, fmt.Errorf("scan param: %w", err)
		}

		out = append(out, p)
	}

	return out, rows.Err()
}

// Measurement is one fitted parameter of one spectrum.
type Measurement struct {
	RunID  string
	Source string
	Value  float64
	Sigma  float64
}

// Measurements returns the named parameter of every successful fit of
// model, oldest run first.
func (s *Store) Measurements(ctx context.Context, model, param string) ([]Measurement, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT r.id, r.source, p.value, p.sigma
		FROM params p
		JOIN fits f ON f.id = p.fit_id
		JOIN runs r ON r.id = f.run_id
		WHERE f.model = ? AND f.error = '' AND p.name = ?
		ORDER BY r.created_at, r.id`, model, param)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var out []Measurement

	for rows.Next() {
		var m Measurement
		if err := rows.Scan(&m.RunID, &m.Source, &m.Value, &m.Sigma); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

// Delete removes a run and its fits.
func (s *Store) Delete(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, runID)
	}

	return nil
}
