package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrQuoteAlreadyExists = errors.New("quote already exists")
	ErrInvalidQuoteID     = errors.New("invalid quote id")
)

const (
	EmptyCollectionText = "Dodaj swój pierwszy cytat!"
	LoadingText         = "Ładowanie..."
)

type Quote struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Author    string    `json:"author" db:"author"`
	DateAdded time.Time `json:"date_added" db:"date_added"`
}

// NewQuote builds a quote with a fresh id. Text and author are stored as
// given; rejecting blank values is the caller's job. DateAdded is cut to
// microseconds, the finest precision postgres keeps.
func NewQuote(text, author string, now time.Time) *Quote {
	return &Quote{
		ID:        uuid.New().String(),
		Text:      text,
		Author:    author,
		DateAdded: now.UTC().Truncate(time.Microsecond),
	}
}

func (q *Quote) Edit(text, author string) {
	q.Text = text
	q.Author = author
}

// Matches reports whether the folded filter is contained in the folded text
// or author. An empty filter matches everything.
func (q *Quote) Matches(foldedFilter string) bool {
	if foldedFilter == "" {
		return true
	}
	return containsFolded(q.Text, foldedFilter) || containsFolded(q.Author, foldedFilter)
}

// ParseQuoteID validates the identifier format without touching storage.
func ParseQuoteID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidQuoteID
	}
	return parsed.String(), nil
}

type SampleQuote struct {
	Text   string
	Author string
}

// SampleQuotes seed an empty collection on first start.
var SampleQuotes = []SampleQuote{
	{"Jedynym sposobem na dobrą robotę jest kochać to, co się robi.", "Steve Jobs"},
	{"Życie jest tym, co dzieje się, gdy jesteś zajęty robieniem innych planów.", "John Lennon"},
	{"Sukces to nie klucz do szczęścia. Szczęście jest kluczem do sukcesu.", "Albert Schweitzer"},
	{"Nie liczy się to, ile masz lat, ale jak je przeżyłeś.", "Abraham Lincoln"},
	{"Bądź zmianą, którą chcesz widzieć w świecie.", "Mahatma Gandhi"},
}
