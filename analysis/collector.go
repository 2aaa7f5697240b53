// Package analysis generates AI-backed market reports for a sector:
// collect recent source material, prompt an LLM for a structured markdown
// report, and persist the result.
package analysis

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultSearchURL = "https://duckduckgo.com/html/"

// Snippet is one collected source fragment.
type Snippet struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Text  string `json:"snippet"`
}

// Collector gathers market/news snippets for a sector by scraping
// DuckDuckGo's HTML endpoint. A proper news API would replace this in
// production.
type Collector struct {
	client    *http.Client
	searchURL string
}

// CollectorOption defines a function type to modify the Collector instance.
type CollectorOption func(*Collector)

// WithSearchURL overrides the search endpoint (primarily for testing).
func WithSearchURL(searchURL string) CollectorOption {
	return func(c *Collector) {
		c.searchURL = searchURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) CollectorOption {
	return func(c *Collector) {
		c.client = client
	}
}

func NewCollector(options ...CollectorOption) *Collector {
	collector := &Collector{
		client:    &http.Client{Timeout: 20 * time.Second},
		searchURL: defaultSearchURL,
	}
	for _, opt := range options {
		opt(collector)
	}
	return collector
}

// SearchNews searches for articles related to query and returns up to
// limit snippets. A failed search is logged and returns an empty slice
// rather than an error; the LLM stage copes with missing sources.
func (c *Collector) SearchNews(ctx context.Context, query string, limit int) ([]Snippet, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "[Collector.SearchNews] building request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search request failed")
		return []Snippet{}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("reading search response failed")
		return []Snippet{}, nil
	}

	return ParseSnippets(string(body), limit), nil
}

// ParseSnippets extracts up to limit snippets from DuckDuckGo result HTML.
// Crude parsing: each "result__snippet" span marks one result.
func ParseSnippets(html string, limit int) []Snippet {
	results := make([]Snippet, 0, limit)
	parts := strings.Split(html, "result__snippet")
	if len(parts) < 2 {
		return results
	}

	for _, part := range parts[1:] {
		if len(results) >= limit {
			break
		}

		var href string
		if hrefIdx := strings.Index(part, `href="`); hrefIdx != -1 {
			hrefStart := hrefIdx + len(`href="`)
			if hrefEnd := strings.Index(part[hrefStart:], `"`); hrefEnd != -1 {
				href = part[hrefStart : hrefStart+hrefEnd]
			}
		}

		var snippet string
		snippetStart := strings.Index(part, ">")
		if snippetStart != -1 {
			if snippetEnd := strings.Index(part[snippetStart+1:], "<"); snippetEnd != -1 {
				snippet = strings.TrimSpace(part[snippetStart+1 : snippetStart+1+snippetEnd])
			}
		}

		title := snippet
		if len(title) > 120 {
			title = title[:120]
		}

		results = append(results, Snippet{Title: title, Link: href, Text: snippet})
	}

	return results
}
