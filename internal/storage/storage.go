// Package storage implements the row store: named tables with header-defined
// columns, accessed by linear scans.
package storage

import (
	"context"

	"github.com/pkg/errors"
)

// Sentinel errors returned by RowStore implementations.
var (
	// ErrUnavailable wraps any backend failure (connection, I/O, corrupt data).
	ErrUnavailable = errors.New("row store unavailable")
	// ErrTableNotFound means the table was never ensured. Readers treat it as empty.
	ErrTableNotFound = errors.New("table not found")
	// ErrRowNotFound means the referenced row no longer exists.
	ErrRowNotFound = errors.New("row not found")
)

// Fields maps column names to cell values.
type Fields map[string]string

// RowRef addresses a single row.
type RowRef struct {
	Table string
	ID    int64
}

// Row is a stored row. Fields holds exactly the table's header columns.
type Row struct {
	Ref    RowRef
	Fields Fields
}

// Get returns the value of a column, or "" when unset.
func (r Row) Get(column string) string {
	return r.Fields[column]
}

// Predicate selects rows during a scan. A nil Predicate matches every row.
type Predicate func(Row) bool

// Where matches rows whose column equals value.
func Where(column, value string) Predicate {
	return func(r Row) bool { return r.Fields[column] == value }
}

// And matches rows accepted by every predicate.
func And(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}

// RowStore is the interface for all row persistence operations.
// There are no transactional guarantees across calls; last write wins per row.
type RowStore interface {
	EnsureTable(ctx context.Context, table string, columns []string) error
	FindRows(ctx context.Context, table string, pred Predicate) ([]Row, error)
	AddRow(ctx context.Context, table string, fields Fields) (Row, error)
	AddRows(ctx context.Context, table string, rows []Fields) error
	UpdateRow(ctx context.Context, ref RowRef, fields Fields) error
	DeleteRow(ctx context.Context, ref RowRef) error
	Ping(ctx context.Context) error
	Close() error
}
