package domain

import (
	"fmt"
	"testing"
)

func listings(ids ...string) []Listing {
	out := make([]Listing, len(ids))
	for i, id := range ids {
		out[i] = Listing{ID: id}
	}
	return out
}

func keys(ls []Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Key()
	}
	return out
}

func assertOrder(t *testing.T, got []Listing, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", keys(got), want)
	}
	for i := range want {
		if got[i].Key() != want[i] {
			t.Fatalf("got %v, want %v", keys(got), want)
		}
	}
}

func TestHistory_MergeSeedsEmptyInPageOrder(t *testing.T) {
	h := NewHistory(75)

	inserted := h.Merge(listings("A", "B", "C"))

	if inserted != 3 {
		t.Errorf("inserted = %d, want 3", inserted)
	}
	assertOrder(t, h.Listings(), "A", "B", "C")
}

func TestHistory_MergePrependsNewPreservingRelativeOrder(t *testing.T) {
	h := NewHistory(75)
	h.Merge(listings("A", "B", "C"))

	h.Merge(listings("D", "E", "A", "B", "C"))

	assertOrder(t, h.Listings(), "D", "E", "A", "B", "C")
}

func TestHistory_MergeIsIdempotent(t *testing.T) {
	h := NewHistory(75)
	h.Merge(listings("A", "B", "C"))

	if inserted := h.Merge(listings("A", "B", "C")); inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
	if inserted := h.Merge(listings("A", "B", "C")); inserted != 0 {
		t.Errorf("second merge inserted = %d, want 0", inserted)
	}
	assertOrder(t, h.Listings(), "A", "B", "C")
}

func TestHistory_MergeContainsEveryMergedKey(t *testing.T) {
	h := NewHistory(75)
	h.Merge(listings("A", "B"))

	batch := listings("C", "A", "D")
	h.Merge(batch)

	for _, l := range batch {
		if !h.Contains(l.Key()) {
			t.Errorf("history missing %q after merge", l.Key())
		}
	}
}

func TestHistory_MergeEvictsOldestAtCap(t *testing.T) {
	h := NewHistory(3)
	h.Merge(listings("A", "B", "C"))

	h.Merge(listings("D"))

	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	assertOrder(t, h.Listings(), "D", "A", "B")
	if h.Contains("C") {
		t.Error("oldest entry C should have been evicted")
	}
}

func TestHistory_MergeAtFullCap(t *testing.T) {
	// Capacity-sized history plus one new listing keeps the size fixed and
	// drops exactly the least recently seen entry.
	h := NewHistory(75)
	var ids []string
	for i := 0; i < 75; i++ {
		ids = append(ids, fmt.Sprintf("L%02d", i))
	}
	h.Merge(listings(ids...))

	h.Merge(listings("NEW"))

	if h.Len() != 75 {
		t.Errorf("Len() = %d, want 75", h.Len())
	}
	got := h.Listings()
	if got[0].Key() != "NEW" {
		t.Errorf("front = %q, want NEW", got[0].Key())
	}
	if h.Contains("L74") {
		t.Error("back entry L74 should have been evicted")
	}
	if !h.Contains("L73") {
		t.Error("entry L73 should still be present")
	}
}

func TestHistory_MergeDropsDuplicateKeysWithinBatch(t *testing.T) {
	h := NewHistory(75)

	h.Merge(listings("A", "A", "B"))

	assertOrder(t, h.Listings(), "A", "B")
}

func TestHistory_NewWithin(t *testing.T) {
	tests := []struct {
		name    string
		known   []string
		results []string
		depth   int
		want    []string
	}{
		{
			name:    "single new entry at front",
			known:   []string{"A", "B", "C"},
			results: []string{"D", "A", "B", "C"},
			depth:   4,
			want:    []string{"D"},
		},
		{
			name:    "nothing new",
			known:   []string{"A", "B", "C"},
			results: []string{"A", "B", "C"},
			depth:   4,
			want:    nil,
		},
		{
			name:    "page order preserved for multiple new entries",
			known:   []string{"A", "B"},
			results: []string{"C", "D", "A", "B"},
			depth:   4,
			want:    []string{"C", "D"},
		},
		{
			name:    "new entry beyond the window is ignored",
			known:   []string{"A", "B"},
			results: []string{"A", "B", "C"},
			depth:   2,
			want:    nil,
		},
		{
			name:    "depth clamps to short result list",
			known:   []string{"A"},
			results: []string{"A", "B"},
			depth:   10,
			want:    []string{"B"},
		},
		{
			name:    "empty results",
			known:   []string{"A"},
			results: nil,
			depth:   10,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(75)
			h.Merge(listings(tt.known...))

			got := h.NewWithin(listings(tt.results...), tt.depth)

			assertOrder(t, got, tt.want...)
		})
	}
}

func TestRestoreHistory(t *testing.T) {
	t.Run("keeps snapshot order", func(t *testing.T) {
		h := RestoreHistory(75, listings("A", "B", "C"))
		assertOrder(t, h.Listings(), "A", "B", "C")
	})

	t.Run("drops duplicate keys", func(t *testing.T) {
		h := RestoreHistory(75, listings("A", "B", "A"))
		assertOrder(t, h.Listings(), "A", "B")
	})

	t.Run("truncates to cap", func(t *testing.T) {
		h := RestoreHistory(2, listings("A", "B", "C"))
		assertOrder(t, h.Listings(), "A", "B")
	})

	t.Run("empty snapshot", func(t *testing.T) {
		h := RestoreHistory(75, nil)
		if h.Len() != 0 {
			t.Errorf("Len() = %d, want 0", h.Len())
		}
	})
}

func TestHistory_ListingsReturnsCopy(t *testing.T) {
	h := NewHistory(75)
	h.Merge(listings("A", "B"))

	got := h.Listings()
	got[0].ID = "mutated"

	if !h.Contains("A") {
		t.Error("mutating the returned slice must not affect the history")
	}
}
