package domain

import "time"

type EntrySource string

const (
	SourcePinned      EntrySource = "pinned"
	SourceDaily       EntrySource = "daily"
	SourceRandom      EntrySource = "random"
	SourceEmpty       EntrySource = "empty"
	SourcePlaceholder EntrySource = "placeholder"
)

type WidgetEntry struct {
	Date   time.Time   `json:"date"`
	Quote  Quote       `json:"quote"`
	Source EntrySource `json:"source"`
}

type WidgetTimeline struct {
	Entries   []WidgetEntry `json:"entries"`
	RefreshAt time.Time     `json:"refresh_at"`
}

// PlaceholderEntry wraps a literal that is never persisted nor written to
// the preference channel.
func PlaceholderEntry(text string, source EntrySource, now time.Time) WidgetEntry {
	return WidgetEntry{
		Date:   now,
		Quote:  Quote{Text: text, Author: "", DateAdded: now},
		Source: source,
	}
}

type ReloadReason string

const (
	ReasonQuoteAdded    ReloadReason = "quote_added"
	ReasonQuoteUpdated  ReloadReason = "quote_updated"
	ReasonQuoteDeleted  ReloadReason = "quote_deleted"
	ReasonQuotePinned   ReloadReason = "quote_pinned"
	ReasonManualRefresh ReloadReason = "manual_refresh"
	ReasonDayRollover   ReloadReason = "day_rollover"
)

// ReloadSignal tells widget surfaces that what they render may be stale.
type ReloadSignal struct {
	Reason  ReloadReason `json:"reason"`
	QuoteID string       `json:"quote_id,omitempty"`
	At      time.Time    `json:"at"`
}
