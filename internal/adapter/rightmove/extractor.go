package rightmove

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentwatch/internal/domain"
)

// ExtractListings parses a search results document into listings in page
// order, first entry most prominent. A missing results container or a card
// missing a required field fails the whole extraction, wrapping
// domain.ErrMalformedPage, so the caller keeps its previous state instead of
// acting on a partially understood page. Relative property links are
// absolutized against baseURL.
func ExtractListings(r io.Reader, baseURL string) ([]domain.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedPage, err)
	}

	container := doc.Find("#l-searchResults")
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: results container not found", domain.ErrMalformedPage)
	}

	var listings []domain.Listing
	var cardErr error
	container.ChildrenFiltered("div").EachWithBreak(func(i int, card *goquery.Selection) bool {
		listing, err := extractCard(card, baseURL)
		if err != nil {
			cardErr = fmt.Errorf("card %d: %w", i, err)
			return false
		}
		listings = append(listings, listing)
		return true
	})
	if cardErr != nil {
		return nil, cardErr
	}

	return listings, nil
}

func extractCard(card *goquery.Selection, baseURL string) (domain.Listing, error) {
	id, ok := card.Attr("id")
	if !ok || id == "" {
		return domain.Listing{}, fmt.Errorf("%w: card has no id attribute", domain.ErrMalformedPage)
	}
	id = strings.TrimPrefix(id, "property-")

	priceText := strings.TrimSpace(card.Find("span.propertyCard-priceValue").First().Text())
	if priceText == "" {
		return domain.Listing{}, fmt.Errorf("%w: price missing for %s", domain.ErrMalformedPage, id)
	}

	href, ok := card.Find("a.propertyCard-priceLink.propertyCard-rentalPrice").First().Attr("href")
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: link missing for %s", domain.ErrMalformedPage, id)
	}
	if !strings.HasPrefix(href, "http") {
		href = baseURL + href
	}

	address := strings.TrimSpace(card.Find("address.propertyCard-address").First().Text())
	if address == "" {
		return domain.Listing{}, fmt.Errorf("%w: address missing for %s", domain.ErrMalformedPage, id)
	}

	title := strings.TrimSpace(card.Find("h2.propertyCard-title").First().Text())
	if title == "" {
		return domain.Listing{}, fmt.Errorf("%w: title missing for %s", domain.ErrMalformedPage, id)
	}

	return domain.Listing{
		ID:        id,
		Title:     title,
		PriceText: priceText,
		Price:     domain.CleanPrice(priceText),
		Address:   address,
		URL:       href,
	}, nil
}
