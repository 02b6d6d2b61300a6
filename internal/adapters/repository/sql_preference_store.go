package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

var _ domain.PreferenceStore = (*SQLPreferenceStore)(nil)

const upsertPreference = `
        INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQLPreferenceStore keeps the shared preference channel in the same
// database file as the quotes. Keys are prefixed with the namespace.
type SQLPreferenceStore struct {
	db        *sqlx.DB
	namespace string
}

func NewSQLPreferenceStore(db *sqlx.DB, namespace string) *SQLPreferenceStore {
	return &SQLPreferenceStore{db: db, namespace: namespace}
}

func (s *SQLPreferenceStore) key(k string) string {
	return s.namespace + ":" + k
}

func (s *SQLPreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`SELECT value FROM preferences WHERE key = ?`), s.key(key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("preference read failed: %w", err)
	}
	return value, true, nil
}

func (s *SQLPreferenceStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(upsertPreference), s.key(key), value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("preference write failed: %w", err)
	}
	return nil
}

func (s *SQLPreferenceStore) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := time.Now().UTC()
	query := tx.Rebind(upsertPreference)
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, query, s.key(k), values[k], now); err != nil {
			return fmt.Errorf("preference write failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

func (s *SQLPreferenceStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = s.key(k)
	}

	query, args, err := sqlx.In(`DELETE FROM preferences WHERE key IN (?)`, namespaced)
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("preference delete failed: %w", err)
	}
	return nil
}
