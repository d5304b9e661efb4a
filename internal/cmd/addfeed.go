package cmd

import (
	"context"
	"fmt"

	"gator/domain"
	"gator/internal/helper"
)

// AddFeed creates a feed owned by user and follows it on their behalf.
func (h *Handlers) AddFeed(ctx context.Context, user domain.User, args ...string) error {
	if len(args) < 2 {
		return usageError("addfeed", "<name> <url>")
	}
	name, feedURL := args[0], args[1]

	if err := helper.ValidateFeedURL(feedURL); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUsage, err)
	}

	feed, _, err := h.Subs.AddFeedAndFollow(ctx, name, feedURL, user.ID)
	if err != nil {
		return err
	}

	fmt.Fprintln(h.Out, "Feed created successfully")
	h.printFeed(feed, user.Name)
	return nil
}
