// Package sqlite implements repository.Store on top of SQLite. Each entity
// is kept as a JSON document in the records table, keyed by (kind, id), so
// the shallow-merge update rules match the in-memory store exactly.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/garnizeh/bectrack/internal/db"
	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

// Store implements repository interfaces using the internal DB wrapper.
type Store struct {
	conn   *db.DB
	logger *slog.Logger
	clock  func() time.Time

	// serializes id allocation and read-modify-write updates
	writeMu sync.Mutex
}

var _ repository.Store = (*Store)(nil)

// New wraps an already migrated connection. A nil logger discards output.
func New(conn *db.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{conn: conn, logger: logger, clock: func() time.Time { return time.Now().UTC() }}
}

// SetClock replaces the time source used for default timestamps.
func (s *Store) SetClock(clock func() time.Time) {
	if clock != nil {
		s.clock = clock
	}
}

func getRecord[T any](ctx context.Context, s *Store, kind string, id int64) (*T, error) {
	var body string
	err := s.conn.QueryRow(ctx, `SELECT body FROM records WHERE kind = ? AND id = ?`, kind, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s %d: %w", kind, id, err)
	}

	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, fmt.Errorf("decode %s %d: %w", kind, id, err)
	}
	return &v, nil
}

// listRecords returns the documents of kind in id order. When field is set
// only documents whose top-level JSON field equals value are returned; field
// is always a constant from this package, never user input.
func listRecords[T any](ctx context.Context, s *Store, kind, field string, value any) ([]T, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if field == "" {
		rows, err = s.conn.QueryRows(ctx, `SELECT body FROM records WHERE kind = ? ORDER BY id`, kind)
	} else {
		q := fmt.Sprintf(`SELECT body FROM records WHERE kind = ? AND json_extract(body, '$.%s') = ? ORDER BY id`, field)
		rows, err = s.conn.QueryRows(ctx, q, kind, value)
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}

	return out, nil
}

func insertRecord[T any](ctx context.Context, s *Store, kind string, build func(id int64) T) (*T, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var id int64
	if err := s.conn.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM records WHERE kind = ?`, kind).Scan(&id); err != nil {
		return nil, fmt.Errorf("next %s id: %w", kind, err)
	}

	v := build(id)
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	if _, err := s.conn.Exec(ctx, `INSERT INTO records (kind, id, body) VALUES (?, ?, ?)`, kind, id, string(body)); err != nil {
		return nil, fmt.Errorf("insert %s: %w", kind, err)
	}

	s.logger.Debug("record created", slog.String("kind", kind), slog.Int64("id", id))
	return &v, nil
}

func patchRecord[T any](ctx context.Context, s *Store, kind string, id int64, p models.Patch, fix func(prev, next *T)) (*T, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur, err := getRecord[T](ctx, s, kind, id)
	if err != nil || cur == nil {
		return nil, err
	}

	merged, err := models.ApplyPatch(*cur, p)
	if err != nil {
		return nil, err
	}
	if fix != nil {
		fix(cur, &merged)
	}

	body, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	if _, err := s.conn.Exec(ctx, `UPDATE records SET body = ? WHERE kind = ? AND id = ?`, string(body), kind, id); err != nil {
		return nil, fmt.Errorf("update %s %d: %w", kind, id, err)
	}

	return &merged, nil
}
