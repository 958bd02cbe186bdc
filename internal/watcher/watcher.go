package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cwygoda/rentwatch/internal/domain"
)

// Params tunes the watch loop.
type Params struct {
	// Interval is the fixed sleep after every cycle, whatever its outcome.
	Interval time.Duration
	// CheckDepth is how many of the freshest fetched entries are inspected
	// for novelty each cycle, clamped to the fetched length.
	CheckDepth int
	// FailThreshold is the number of consecutive connection failures that
	// triggers a one-time escalation alert.
	FailThreshold int
}

// Watcher drives the fetch, diff, notify, persist cycle against a bounded
// history of already-seen listings.
type Watcher struct {
	source   domain.Source
	store    domain.Store
	notifier domain.Notifier
	history  *domain.History
	params   Params

	// failCount is the only state that survives across cycles besides the
	// history itself: consecutive connection failures, reset on success.
	failCount int
}

// New creates a watcher around the given ports and pre-loaded history.
func New(source domain.Source, store domain.Store, notifier domain.Notifier, history *domain.History, params Params) *Watcher {
	return &Watcher{
		source:   source,
		store:    store,
		notifier: notifier,
		history:  history,
		params:   params,
	}
}

// Run executes cycles until the context is cancelled, sleeping a fixed
// interval between them. The first cycle starts immediately.
func (w *Watcher) Run(ctx context.Context) {
	log.Info("watcher started", "interval", w.params.Interval, "tracked", w.history.Len())

	for {
		w.cycle(ctx)

		select {
		case <-ctx.Done():
			log.Info("watcher shutting down")
			return
		case <-time.After(w.params.Interval):
		}
	}
}

func (w *Watcher) cycle(ctx context.Context) {
	results, err := w.source.Fetch(ctx)
	if err != nil {
		w.handleFetchError(ctx, err)
		return
	}
	w.failCount = 0

	if w.history.Len() == 0 {
		// First successful fetch is the baseline, not news.
		w.history.Merge(results)
		log.Info("seeded initial listings", "count", w.history.Len())
		w.persist()
		return
	}

	fresh := w.history.NewWithin(results, w.params.CheckDepth)
	for _, listing := range fresh {
		log.Info("new listing", "id", listing.ID, "title", listing.Title, "price", listing.PriceText)
		w.notify(ctx, listing.Summary())
	}
	if len(fresh) == 0 {
		log.Info("no new listings")
	}

	w.history.Merge(results)
	w.persist()
}

func (w *Watcher) handleFetchError(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}

	if errors.Is(err, domain.ErrUnreachable) {
		w.failCount++
		log.Warn("failed to connect", "consecutive", w.failCount, "err", err)
		if w.failCount == w.params.FailThreshold {
			w.notify(ctx, "rentwatch: failed to connect to the search site")
		}
		return
	}

	// Bad status or malformed page: skip the cycle and keep the previous
	// history rather than act on a page we did not fully understand.
	log.Error("cycle failed, keeping previous history", "err", err)
}

// notify sends an alert, logging and swallowing delivery failures. A lost
// message never aborts the loop and is not retried.
func (w *Watcher) notify(ctx context.Context, message string) {
	if err := w.notifier.Send(ctx, message); err != nil {
		log.Warn("failed to send text", "err", err)
	}
}

func (w *Watcher) persist() {
	if err := w.store.Save(w.history.Listings()); err != nil {
		log.Warn("failed to persist history", "err", err)
	}
}
