package rightmove

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cwygoda/rentwatch/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/104.0.5112.102 Safari/537.36"

// Client implements domain.Source against the Rightmove search results page.
type Client struct {
	httpClient *http.Client
	baseURL    string
	searchURL  string
	params     url.Values
	userAgent  string
}

// Options configures the client.
type Options struct {
	SearchURL string
	// Params is the opaque search parameter map sent as the query string.
	Params    map[string]string
	Timeout   time.Duration
	UserAgent string
}

// NewClient creates a search client with an explicit request timeout.
func NewClient(opts Options) (*Client, error) {
	base, err := url.Parse(opts.SearchURL)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("search url %q is not absolute", opts.SearchURL)
	}

	params := url.Values{}
	for key, value := range opts.Params {
		params.Set(key, value)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    base.Scheme + "://" + base.Host,
		searchURL:  opts.SearchURL,
		params:     params,
		userAgent:  userAgent,
	}, nil
}

// Fetch performs one search request and extracts the listings in page order.
// Connection-level failures wrap domain.ErrUnreachable; a non-2xx response
// wraps domain.ErrBadStatus.
func (c *Client) Fetch(ctx context.Context) ([]domain.Listing, error) {
	requestURL := c.searchURL
	if encoded := c.params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search returned %d", domain.ErrBadStatus, resp.StatusCode)
	}

	listings, err := ExtractListings(resp.Body, c.baseURL)
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// Login authenticates the session with the site. Optional; only called when
// login credentials are configured.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: login returned %d", domain.ErrBadStatus, resp.StatusCode)
	}
	return nil
}
