package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Querier is the subset of *sql.DB and *sql.Tx used by the repositories, so the same
// repository can run standalone or inside a caller-owned transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// storedTimeLayout is fixed width so stored timestamps sort lexically.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders a timestamp the way it is stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// parseTimes parses several stored timestamps in one go, failing on the first bad value.
func parseTimes(pairs ...timeField) error {
	for _, p := range pairs {
		t, err := ParseTime(p.raw)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p.name, err)
		}
		*p.dst = t
	}
	return nil
}

type timeField struct {
	name string
	raw  string
	dst  *time.Time
}
