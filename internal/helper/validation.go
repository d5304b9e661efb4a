package helper

import (
	"fmt"
	"net/url"
)

// ValidateFeedURL checks that feedURL is an absolute http(s) URL. It does not
// contact the host.
func ValidateFeedURL(feedURL string) error {
	u, err := url.ParseRequestURI(feedURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid feed URL %q: missing host", feedURL)
	}

	return nil
}
