package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"finbot-be/internal/apperror"
)

// Fetch failures are client-correctable: the caller supplied a URL that does
// not resolve to readable content, so all three map onto 400 at the boundary.
var (
	ErrFetchNotFound = fmt.Errorf("%w: url not found", apperror.ErrInvalidInput)
	ErrFetchBlocked  = fmt.Errorf("%w: url fetch blocked", apperror.ErrInvalidInput)
	ErrFetchTimeout  = fmt.Errorf("%w: url fetch timed out", apperror.ErrInvalidInput)
)

const fetchTimeout = 30 * time.Second

// Scraper fetches a URL and extracts the visible page text.
type Scraper struct {
	client *http.Client
}

func NewScraper() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// ScrapeURL downloads the page and returns its visible text with script and
// style content removed and whitespace collapsed.
func (s *Scraper) ScrapeURL(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", apperror.Invalid("malformed url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", apperror.Invalid("build request for %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", "finbot/1.0 (+document ingestion)")

	res, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeoutErr(err) {
			return "", fmt.Errorf("%w: fetching %q", ErrFetchTimeout, rawURL)
		}
		return "", fmt.Errorf("%w: fetching %q: %v", apperror.ErrUpstreamFailure, rawURL, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone:
		return "", fmt.Errorf("%w: %q returned %d", ErrFetchNotFound, rawURL, res.StatusCode)
	case res.StatusCode == http.StatusForbidden || res.StatusCode == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: %q returned %d", ErrFetchBlocked, rawURL, res.StatusCode)
	case res.StatusCode >= 400:
		return "", fmt.Errorf("%w: %q returned %d", apperror.ErrUpstreamFailure, rawURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", apperror.Extraction("parse page %q: %v", rawURL, err)
	}
	return documentText(doc), nil
}

func isTimeoutErr(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
