package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"dash0times/internal/model"
)

// ErrNotInitialized is returned by Query before Init has completed.
var ErrNotInitialized = errors.New("query store not initialized")

// QueryError carries the driver message of a failed statement.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v", e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Row maps column names to values as returned by the driver.
type Row map[string]any

// QueryStore is a read-only relational mirror of the article fixtures. It is
// filled once by Init and only read afterwards.
type QueryStore struct {
	db    *sql.DB
	ready atomic.Bool
}

func NewQueryStore(db *sql.DB) *QueryStore {
	return &QueryStore{db: db}
}

// Init creates the articles table and inserts every article in one
// transaction. Tags are stored as a JSON array string.
func (s *QueryStore) Init(ctx context.Context, articles []model.Article) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		CREATE TABLE articles (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			excerpt     TEXT,
			body        TEXT,
			author      TEXT,
			publishedAt TEXT,
			tags        TEXT
		)
	`)
	if err != nil {
		return &QueryError{Query: "CREATE TABLE articles", Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, title, excerpt, body, author, publishedAt, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &QueryError{Query: "INSERT INTO articles", Err: err}
	}
	defer stmt.Close()

	for _, a := range articles {
		tags, err := json.Marshal(a.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags for article %s: %w", a.ID, err)
		}

		_, err = stmt.ExecContext(ctx, a.ID, a.Title, a.Excerpt, a.Body, a.Author, model.Timestamp(a.PublishedAt), string(tags))
		if err != nil {
			return &QueryError{Query: "INSERT INTO articles", Err: fmt.Errorf("article %s: %w", a.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.ready.Store(true)
	return nil
}

// Query runs a statement and returns every row as a column-name map.
func (s *QueryStore) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	if !s.ready.Load() {
		return nil, ErrNotInitialized
	}

	// The database lives on a single connection, and database/sql throws a
	// connection away when its statement is cancelled. Statements therefore
	// run detached from ctx and only the result honors cancellation.
	rows, err := s.db.QueryContext(context.WithoutCancel(ctx), query, args...)
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &QueryError{Query: query, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *QueryStore) Close() error {
	s.ready.Store(false)
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
