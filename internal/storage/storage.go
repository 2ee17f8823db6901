// Package storage implements the engine's persistence interfaces on SQLite.
package storage

import (
	"database/sql"
	"strings"
	"time"
)

// Store implements the coach, profile and record store interfaces over a
// single SQLite connection. Artifact tables carry the unique keys that
// backstop the generate-or-fetch race: inserts that lose the race surface
// coach.ErrConflict.
type Store struct {
	db *sql.DB
}

// New creates a Store over an existing connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// isUniqueViolation reports whether err is a SQLite unique-key failure.
// The modernc driver has no exported error codes, so this matches the
// constraint message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func dateKey(d time.Time) string {
	return d.Format(time.DateOnly)
}

func parseDateKey(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func dayOf(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
