package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

const defaultFeedURL = "https://www.wagslane.dev/index.xml"

// Agg fetches one feed, defaultFeedURL unless a url is given, and prints it as JSON.
func (h *Handlers) Agg(ctx context.Context, args ...string) error {
	feedURL := defaultFeedURL
	if len(args) > 0 {
		feedURL = args[0]
	}

	feed, err := h.Fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(feed, "", "    ")
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	fmt.Fprintln(h.Out, string(out))
	return nil
}
