package services

import (
	"context"
	"fmt"
	"time"

	"github.com/loranstudio/quotewidget-engine/internal/core/domain"
)

const (
	KeyPinnedQuoteID      = "pinnedQuoteID"
	KeyDailyQuoteID       = "dailyQuoteID"
	KeyLastQuoteDate      = "lastQuoteDate"
	KeySampleDataSeededAt = "sampleDataSeededAt"
)

// PreferenceChannel is the typed view over the shared key/value store that
// the app and the widget use to agree on what the widget shows. References
// to quotes are plain ids and may dangle.
type PreferenceChannel struct {
	store domain.PreferenceStore
}

func NewPreferenceChannel(store domain.PreferenceStore) *PreferenceChannel {
	return &PreferenceChannel{store: store}
}

func (c *PreferenceChannel) PinnedQuoteID(ctx context.Context) (string, bool, error) {
	id, ok, err := c.store.Get(ctx, KeyPinnedQuoteID)
	if err != nil || !ok || id == "" {
		return "", false, err
	}
	return id, true, nil
}

func (c *PreferenceChannel) SetPinnedQuoteID(ctx context.Context, id string) error {
	return c.store.Set(ctx, KeyPinnedQuoteID, id)
}

func (c *PreferenceChannel) ClearPinnedQuoteID(ctx context.Context) error {
	return c.store.Delete(ctx, KeyPinnedQuoteID)
}

// DailyPick reads the cached quote of the day. Both keys must be present and
// the date must parse, otherwise there is no pick.
func (c *PreferenceChannel) DailyPick(ctx context.Context) (string, time.Time, bool, error) {
	id, ok, err := c.store.Get(ctx, KeyDailyQuoteID)
	if err != nil || !ok || id == "" {
		return "", time.Time{}, false, err
	}

	date, ok, err := c.readTime(ctx, KeyLastQuoteDate)
	if err != nil || !ok {
		return "", time.Time{}, false, err
	}

	return id, date, true, nil
}

func (c *PreferenceChannel) SetDailyPick(ctx context.Context, id string, date time.Time) error {
	return c.store.SetMany(ctx, map[string]string{
		KeyDailyQuoteID:  id,
		KeyLastQuoteDate: date.Format(time.RFC3339Nano),
	})
}

func (c *PreferenceChannel) SampleDataSeededAt(ctx context.Context) (time.Time, bool, error) {
	return c.readTime(ctx, KeySampleDataSeededAt)
}

func (c *PreferenceChannel) MarkSampleDataSeeded(ctx context.Context, at time.Time) error {
	return c.store.Set(ctx, KeySampleDataSeededAt, at.UTC().Format(time.RFC3339Nano))
}

// State is a read-only snapshot of the widget keys.
func (c *PreferenceChannel) State(ctx context.Context) (WidgetState, error) {
	var state WidgetState

	pinned, ok, err := c.PinnedQuoteID(ctx)
	if err != nil {
		return state, fmt.Errorf("read pinned quote: %w", err)
	}
	if ok {
		state.PinnedQuoteID = pinned
	}

	daily, date, ok, err := c.DailyPick(ctx)
	if err != nil {
		return state, fmt.Errorf("read daily pick: %w", err)
	}
	if ok {
		state.DailyQuoteID = daily
		state.LastQuoteDate = &date
	}

	return state, nil
}

func (c *PreferenceChannel) readTime(ctx context.Context, key string) (time.Time, bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return time.Time{}, false, err
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}

type WidgetState struct {
	PinnedQuoteID string     `json:"pinned_quote_id,omitempty"`
	DailyQuoteID  string     `json:"daily_quote_id,omitempty"`
	LastQuoteDate *time.Time `json:"last_quote_date,omitempty"`
}
