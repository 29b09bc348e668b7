// Package repository provides typed access to the Users, Follows and
// TeamCatalog tables of the row store.
package repository

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"football_bot/internal/storage"
)

// ErrNotFound is returned when the requested entity has no row.
var ErrNotFound = errors.New("not found")

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// orEmpty turns a missing table into an empty result.
func orEmpty(rows []storage.Row, err error) ([]storage.Row, error) {
	if errors.Is(err, storage.ErrTableNotFound) {
		return nil, nil
	}
	return rows, err
}
