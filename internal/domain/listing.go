package domain

import (
	"fmt"
	"strings"
)

// Listing is one property entry surfaced by the search results page.
type Listing struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PriceText string `json:"price_text"`
	Price     string `json:"price"`
	Address   string `json:"address"`
	URL       string `json:"url"`
}

// Key returns the identity of the listing. Two listings refer to the same
// property iff their keys match, regardless of any descriptive field.
func (l Listing) Key() string {
	return l.ID
}

// Summary renders the human-readable notification body for the listing.
func (l Listing) Summary() string {
	return fmt.Sprintf("%s, %s\n%s\n%s", l.Title, l.PriceText, l.Address, l.URL)
}

// CleanPrice strips the currency symbol and period suffix from a displayed
// price, e.g. "£1,850 pcm" becomes "1,850".
func CleanPrice(priceText string) string {
	s := strings.ReplaceAll(priceText, "pcm", "")
	s = strings.ReplaceAll(s, "£", "")
	return strings.TrimSpace(s)
}
