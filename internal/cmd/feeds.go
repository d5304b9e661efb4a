package cmd

import (
	"context"
	"fmt"
)

func (h *Handlers) Feeds(ctx context.Context, _ ...string) error {
	feeds, err := h.Subs.ListFeedsWithOwners(ctx)
	if err != nil {
		return fmt.Errorf("could not list feeds: %w", err)
	}

	if len(feeds) == 0 {
		fmt.Fprintln(h.Out, "No feeds available")
		return nil
	}

	for i, f := range feeds {
		if i > 0 {
			fmt.Fprintln(h.Out)
		}
		h.printFeed(f.Feed, f.Owner.Name)
	}
	return nil
}
