package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

var _ domain.QuoteRepository = (*SQLQuoteRepository)(nil)

const quoteColumns = `id, text, author, date_added`

const quoteOrder = ` ORDER BY date_added DESC, id ASC`

// SQLQuoteRepository stores quotes in sqlite or postgres. Folded search keys
// are written next to each row so filtering stays inside the database.
type SQLQuoteRepository struct {
	db *sqlx.DB
}

func NewSQLQuoteRepository(db *sqlx.DB) *SQLQuoteRepository {
	return &SQLQuoteRepository{db: db}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *SQLQuoteRepository) List(ctx context.Context, filter domain.QuoteFilter) ([]*domain.Quote, error) {
	var (
		sb   strings.Builder
		args []interface{}
	)

	sb.WriteString(`SELECT ` + quoteColumns + ` FROM quotes`)

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		sb.WriteString(` WHERE text_key LIKE ? ESCAPE '\' OR author_key LIKE ? ESCAPE '\'`)
		args = append(args, pattern, pattern)
	}

	sb.WriteString(quoteOrder)

	switch {
	case filter.Limit > 0:
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, filter.Limit, filter.Offset)
	case filter.Offset > 0:
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, int64(math.MaxInt64), filter.Offset)
	}

	quotes := []*domain.Quote{}
	if err := r.db.SelectContext(ctx, &quotes, r.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	for _, q := range quotes {
		q.DateAdded = q.DateAdded.UTC()
	}

	return quotes, nil
}

func (r *SQLQuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	query := r.db.Rebind(`SELECT ` + quoteColumns + ` FROM quotes WHERE id = ?`)

	var q domain.Quote
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	q.DateAdded = q.DateAdded.UTC()
	return &q, nil
}

func (r *SQLQuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	query := r.db.Rebind(`
        INSERT INTO quotes (id, text, author, text_key, author_key, date_added)
        VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.Text, q.Author,
		domain.FoldSearch(q.Text), domain.FoldSearch(q.Author),
		q.DateAdded.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrQuoteAlreadyExists
		}
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	return nil
}

func (r *SQLQuoteRepository) Update(ctx context.Context, q *domain.Quote) error {
	query := r.db.Rebind(`
        UPDATE quotes SET text = ?, author = ?, text_key = ?, author_key = ?
        WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		q.Text, q.Author,
		domain.FoldSearch(q.Text), domain.FoldSearch(q.Author),
		q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	return requireAffected(res)
}

func (r *SQLQuoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM quotes WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	return requireAffected(res)
}

func (r *SQLQuoteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM quotes`); err != nil {
		return 0, fmt.Errorf("count error: %w", err)
	}
	return count, nil
}

func (r *SQLQuoteRepository) GetAtOffset(ctx context.Context, offset int) (*domain.Quote, error) {
	if offset < 0 {
		return nil, domain.ErrQuoteNotFound
	}

	query := r.db.Rebind(`SELECT ` + quoteColumns + ` FROM quotes` + quoteOrder + ` LIMIT 1 OFFSET ?`)

	var q domain.Quote
	if err := r.db.GetContext(ctx, &q, query, offset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	q.DateAdded = q.DateAdded.UTC()
	return &q, nil
}

func requireAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrQuoteNotFound
	}
	return nil
}
