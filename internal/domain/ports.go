package domain

import (
	"context"
	"errors"
)

var (
	// ErrUnreachable marks a connection-level fetch failure. The watcher
	// counts consecutive occurrences and escalates past a threshold.
	ErrUnreachable = errors.New("site unreachable")

	// ErrBadStatus marks a non-2xx search response.
	ErrBadStatus = errors.New("unexpected response status")

	// ErrMalformedPage marks a results page missing the expected structure.
	ErrMalformedPage = errors.New("malformed results page")
)

// Source is the driven port for retrieving the current search results as an
// ordered list of listings, first entry most prominent. Swapping the page
// scraping strategy (or a future API-based source) means swapping this port.
type Source interface {
	Fetch(ctx context.Context) ([]Listing, error)
}

// Store is the driven port for persisting the seen-listing history between
// runs. Load returns an empty list when no snapshot exists yet.
type Store interface {
	Load() ([]Listing, error)
	Save(listings []Listing) error
}

// Notifier is the driven port for alert delivery.
type Notifier interface {
	Send(ctx context.Context, message string) error
}
