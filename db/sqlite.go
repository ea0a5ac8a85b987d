package db

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// MemoryDSN names a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// OpenMemory opens a fresh in-memory SQLite database. Every connection to
// ":memory:" gets its own database, so the pool is pinned to one connection
// that is never recycled; closing it discards the data.
func OpenMemory() (*sql.DB, error) {
	conn, err := sql.Open("sqlite", MemoryDSN)
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
