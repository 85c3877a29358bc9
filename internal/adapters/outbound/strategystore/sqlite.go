package strategystore

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/openkraft/lowgen/internal/domain"
)

// MemoryDSN opens a private in-memory registry.
const MemoryDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS strategies (
	name       TEXT PRIMARY KEY,
	framework  TEXT NOT NULL,
	document   BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLite implements domain.StrategyRepository on a SQLite database. Each
// strategy is stored as one msgpack document keyed by name.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens, and creates when missing, the registry at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating registry dir: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating registry schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (r *SQLite) Close() error {
	return r.db.Close()
}

func (r *SQLite) List(ctx context.Context) ([]domain.GenerationStrategy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, document FROM strategies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing strategies: %w", err)
	}
	defer rows.Close()

	var out []domain.GenerationStrategy
	for rows.Next() {
		var (
			name string
			doc  []byte
		)
		if err := rows.Scan(&name, &doc); err != nil {
			return nil, fmt.Errorf("scanning strategy: %w", err)
		}
		s, err := decode(doc)
		if err != nil {
			return nil, fmt.Errorf("decoding strategy %s: %w", name, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLite) Get(ctx context.Context, name string) (*domain.GenerationStrategy, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM strategies WHERE name = ?`, name).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("getting strategy %s: %w", name, err)
	}
	s, err := decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding strategy %s: %w", name, err)
	}
	return &s, nil
}

func (r *SQLite) Save(ctx context.Context, s domain.GenerationStrategy) error {
	doc, err := encode(s)
	if err != nil {
		return fmt.Errorf("encoding strategy %s: %w", s.Name, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO strategies (name, framework, document, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET framework = excluded.framework, document = excluded.document, updated_at = excluded.updated_at`,
		s.Name, s.Framework, doc, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving strategy %s: %w", s.Name, err)
	}
	return nil
}

func (r *SQLite) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM strategies WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting strategy %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting strategy %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	return nil
}

// Documents reuse the json field names so a stored strategy reads the same
// as its file form.
func encode(s domain.GenerationStrategy) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetOmitEmpty(true)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(doc []byte) (domain.GenerationStrategy, error) {
	var s domain.GenerationStrategy
	dec := msgpack.NewDecoder(bytes.NewReader(doc))
	dec.SetCustomStructTag("json")
	err := dec.Decode(&s)
	return s, err
}
