package artifact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/horae/internal/db"
)

// SQLiteStore implements Store against a local SQLite database so the
// editor works offline. The concurrency token is a monotonically
// increasing integer version rendered as a string; it is still treated
// as opaque by callers.
type SQLiteStore struct {
	db  *sql.DB
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLiteStore creates a local artifact store.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
		now: time.Now,
	}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*Document, error) {
	var content []byte
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT content, version FROM artifacts WHERE key = ?`, key,
	).Scan(&content, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading artifact %q: %w", key, err)
	}
	return &Document{Data: content, Token: strconv.FormatInt(version, 10)}, nil
}

// Put checks the precondition and writes inside one transaction, so two
// racing saves against the same token cannot both win.
func (s *SQLiteStore) Put(ctx context.Context, key string, data []byte, precondition string) (string, error) {
	var newToken string
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var version int64
		err := tx.QueryRowContext(ctx,
			`SELECT version FROM artifacts WHERE key = ?`, key,
		).Scan(&version)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			if precondition != "" {
				return fmt.Errorf("%w: artifact %q no longer exists", ErrConflict, key)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO artifacts (key, type, content, version, updated_at) VALUES (?, ?, ?, 1, ?)`,
				key, "schedule", data, s.now().UTC().Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("inserting artifact %q: %w", key, err)
			}
			newToken = "1"
			return nil
		case err != nil:
			return fmt.Errorf("reading artifact version: %w", err)
		}

		if precondition != strconv.FormatInt(version, 10) {
			return fmt.Errorf("%w: expected version %d", ErrConflict, version)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE artifacts SET content = ?, version = ?, updated_at = ? WHERE key = ?`,
			data, version+1, s.now().UTC().Format(time.RFC3339), key,
		); err != nil {
			return fmt.Errorf("updating artifact %q: %w", key, err)
		}
		newToken = strconv.FormatInt(version+1, 10)
		return nil
	})
	if err != nil {
		return "", err
	}
	return newToken, nil
}
