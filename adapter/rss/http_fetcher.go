package rss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"gator/domain"
)

const userAgent = "gator"

type HTTPFetcher struct{ client *http.Client }

// NewHTTPFetcher returns a fetcher using client, or http.DefaultClient when client is nil.
// Timeouts are left to the caller's context.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch performs a single GET of feedURL and parses the body.
// Transport, status and XML syntax failures are reported as *domain.FetchError;
// validation failures as domain.ErrMalformedFeed or domain.ErrMissingMetadata.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (*domain.RSSFeed, error) {
	body, err := f.get(ctx, feedURL)
	if err != nil {
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}

	feed, err := Parse(body)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMalformedFeed), errors.Is(err, domain.ErrMissingMetadata):
		return nil, err
	default:
		return nil, &domain.FetchError{URL: feedURL, Err: err}
	}

	log.WithFields(log.Fields{
		"url":   feedURL,
		"title": feed.Channel.Title,
		"items": len(feed.Channel.Items),
	}).Debug("Fetched feed")

	return feed, nil
}

func (f *HTTPFetcher) get(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	log.WithField("url", feedURL).Debug("Fetching feed")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
