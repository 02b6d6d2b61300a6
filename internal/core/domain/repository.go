package domain

import (
	"context"
)

// QuoteFilter narrows a listing. Search must already be folded with
// FoldSearch. A zero Limit means no limit.
type QuoteFilter struct {
	Search string
	Limit  int
	Offset int
}

type QuoteRepository interface {
	// List returns quotes newest first (date_added DESC, id ASC).
	List(ctx context.Context, filter QuoteFilter) ([]*Quote, error)

	// GetByID retrieves a quote by its unique identifier.
	GetByID(ctx context.Context, id string) (*Quote, error)

	// Create persists a new quote.
	Create(ctx context.Context, quote *Quote) error

	// Update overwrites text and author of an existing quote.
	Update(ctx context.Context, quote *Quote) error

	// Delete permanently removes a quote.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)

	// GetAtOffset returns the row at position offset in the default order,
	// or ErrQuoteNotFound past the end.
	GetAtOffset(ctx context.Context, offset int) (*Quote, error)
}

// PreferenceStore is a small namespaced key/value store shared between
// processes. Atomicity is per key; SetMany writes its keys together.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
