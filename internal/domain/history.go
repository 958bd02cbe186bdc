package domain

// History is the bounded, order-preserving record of listings already seen,
// most recent first. Membership is checked by listing key; the collection
// never holds two entries with the same key and never grows past its cap.
type History struct {
	cap     int
	entries []Listing
}

// NewHistory creates an empty history with the given capacity.
func NewHistory(capacity int) *History {
	return &History{cap: capacity}
}

// RestoreHistory rebuilds a history from persisted entries, keeping their
// order. Duplicate keys are dropped and the list is truncated to the cap, so
// a hand-edited or stale snapshot cannot break the invariants.
func RestoreHistory(capacity int, entries []Listing) *History {
	h := NewHistory(capacity)
	for _, l := range entries {
		if h.Contains(l.Key()) {
			continue
		}
		if len(h.entries) == capacity {
			break
		}
		h.entries = append(h.entries, l)
	}
	return h
}

// Len returns the number of tracked listings.
func (h *History) Len() int {
	return len(h.entries)
}

// Contains reports whether a listing with the given key has been seen.
func (h *History) Contains(key string) bool {
	for _, l := range h.entries {
		if l.Key() == key {
			return true
		}
	}
	return false
}

// NewWithin returns the listings among the first depth entries of results
// that are not yet in the history, in page order. The lookahead clamps to
// the result length, so a short page is inspected in full rather than
// failing. Repeated keys within the window are reported once.
func (h *History) NewWithin(results []Listing, depth int) []Listing {
	if depth > len(results) {
		depth = len(results)
	}
	var fresh []Listing
	for _, l := range results[:depth] {
		if h.Contains(l.Key()) || containsKey(fresh, l.Key()) {
			continue
		}
		fresh = append(fresh, l)
	}
	return fresh
}

// Merge inserts every unseen listing from results at the front, preserving
// their relative page order, then evicts from the back until the cap holds.
// Already-known listings are left where they are. Returns the number of
// listings inserted.
func (h *History) Merge(results []Listing) int {
	var fresh []Listing
	for _, l := range results {
		if h.Contains(l.Key()) || containsKey(fresh, l.Key()) {
			continue
		}
		fresh = append(fresh, l)
	}
	if len(fresh) == 0 {
		return 0
	}
	h.entries = append(fresh, h.entries...)
	if len(h.entries) > h.cap {
		h.entries = h.entries[:h.cap]
	}
	return len(fresh)
}

// Listings returns a copy of the tracked listings, most recent first.
func (h *History) Listings() []Listing {
	out := make([]Listing, len(h.entries))
	copy(out, h.entries)
	return out
}

func containsKey(listings []Listing, key string) bool {
	for _, l := range listings {
		if l.Key() == key {
			return true
		}
	}
	return false
}
