package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver registration.

	"football_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements RowStore backed by a SQLite database.
// Each logical table keeps its header in row_tables; rows are JSON objects.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// EnsureTable creates the table with the given header on first use. If the
// table exists, columns missing from its header are appended; existing
// columns are never removed or reordered.
func (s *SQLite) EnsureTable(ctx context.Context, table string, columns []string) error {
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("ensure table %q: name and columns are required", table)
	}

	header, err := s.header(ctx, table)
	switch {
	case errors.Is(err, ErrTableNotFound):
		raw, err := json.Marshal(columns)
		if err != nil {
			return fmt.Errorf("encode header: %w", err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO row_tables (name, columns, created_at) VALUES (?, ?, ?)`,
			table, string(raw), now(),
		)
		if err != nil {
			return unavailable("create table", err)
		}
		return nil
	case err != nil:
		return err
	}

	merged := header
	for _, c := range columns {
		if !slices.Contains(merged, c) {
			merged = append(merged, c)
		}
	}
	if len(merged) == len(header) {
		return nil
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE row_tables SET columns = ? WHERE name = ?`, string(raw), table); err != nil {
		return unavailable("extend header", err)
	}
	return nil
}

// FindRows scans every row of the table and returns those matching pred, in insertion order.
func (s *SQLite) FindRows(ctx context.Context, table string, pred Predicate) ([]Row, error) {
	header, err := s.header(ctx, table)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields FROM rows WHERE table_name = ? ORDER BY id`, table,
	)
	if err != nil {
		return nil, unavailable("query rows", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, unavailable("scan row", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, unavailable("decode row", err)
		}
		row := Row{Ref: RowRef{Table: table, ID: id}, Fields: project(header, fields)}
		if pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate rows", err)
	}
	return out, nil
}

// AddRow appends a row. Columns outside the header are dropped.
func (s *SQLite) AddRow(ctx context.Context, table string, fields Fields) (Row, error) {
	header, err := s.header(ctx, table)
	if err != nil {
		return Row{}, err
	}

	projected := project(header, fields)
	raw, err := json.Marshal(projected)
	if err != nil {
		return Row{}, fmt.Errorf("encode row: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rows (table_name, fields, updated_at) VALUES (?, ?, ?)`,
		table, string(raw), now(),
	)
	if err != nil {
		return Row{}, unavailable("insert row", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Row{}, unavailable("last insert id", err)
	}
	return Row{Ref: RowRef{Table: table, ID: id}, Fields: projected}, nil
}

// AddRows appends several rows in one transaction.
func (s *SQLite) AddRows(ctx context.Context, table string, batch []Fields) error {
	if len(batch) == 0 {
		return nil
	}
	header, err := s.header(ctx, table)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin tx", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO rows (table_name, fields, updated_at) VALUES (?, ?, ?)`)
	if err != nil {
		return unavailable("prepare insert", err)
	}
	defer func() { _ = stmt.Close() }()

	ts := now()
	for _, fields := range batch {
		raw, err := json.Marshal(project(header, fields))
		if err != nil {
			return fmt.Errorf("encode row: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, table, string(raw), ts); err != nil {
			return unavailable("insert row", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

// UpdateRow merges fields into the referenced row.
func (s *SQLite) UpdateRow(ctx context.Context, ref RowRef, fields Fields) error {
	header, err := s.header(ctx, ref.Table)
	if err != nil {
		return err
	}

	var raw string
	err = s.db.QueryRowContext(ctx,
		`SELECT fields FROM rows WHERE id = ? AND table_name = ?`, ref.ID, ref.Table,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update %s#%d: %w", ref.Table, ref.ID, ErrRowNotFound)
	}
	if err != nil {
		return unavailable("load row", err)
	}

	current, err := decodeFields(raw)
	if err != nil {
		return unavailable("decode row", err)
	}
	for k, v := range fields {
		current[k] = v
	}
	encoded, err := json.Marshal(project(header, current))
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE rows SET fields = ?, updated_at = ? WHERE id = ?`, string(encoded), now(), ref.ID,
	); err != nil {
		return unavailable("update row", err)
	}
	return nil
}

// DeleteRow removes the referenced row.
func (s *SQLite) DeleteRow(ctx context.Context, ref RowRef) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM rows WHERE id = ? AND table_name = ?`, ref.ID, ref.Table,
	)
	if err != nil {
		return unavailable("delete row", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s#%d: %w", ref.Table, ref.ID, ErrRowNotFound)
	}
	return nil
}

func (s *SQLite) header(ctx context.Context, table string) ([]string, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT columns FROM row_tables WHERE name = ?`, table).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", table, ErrTableNotFound)
	}
	if err != nil {
		return nil, unavailable("load header", err)
	}
	var columns []string
	if err := json.Unmarshal([]byte(raw), &columns); err != nil {
		return nil, unavailable("decode header", err)
	}
	return columns, nil
}

func decodeFields(raw string) (Fields, error) {
	fields := Fields{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func project(header []string, fields Fields) Fields {
	out := make(Fields, len(header))
	for _, c := range header {
		out[c] = fields[c]
	}
	return out
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}
