package cmd

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"gator/domain"
)

func (h *Handlers) Follow(ctx context.Context, user domain.User, args ...string) error {
	if len(args) < 1 {
		return usageError("follow", "<url>")
	}

	feed, err := h.feedByURL(ctx, args[0])
	if err != nil {
		return err
	}

	follow, err := h.Subs.Follow(ctx, user.ID, feed.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.Out, "Feed name: %s\n", follow.FeedName)
	fmt.Fprintf(h.Out, "User name: %s\n", follow.UserName)
	return nil
}

// Following prints the name of every feed user follows, one per line.
func (h *Handlers) Following(ctx context.Context, user domain.User, _ ...string) error {
	follows, err := h.Subs.ListFollowsForUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("could not list follows for %s: %w", user.Name, err)
	}

	names := lo.Map(follows, func(f domain.FeedFollowDetail, _ int) string { return f.FeedName })
	for _, name := range names {
		fmt.Fprintln(h.Out, name)
	}
	return nil
}

func (h *Handlers) Unfollow(ctx context.Context, user domain.User, args ...string) error {
	if len(args) < 1 {
		return usageError("unfollow", "<url>")
	}

	feed, err := h.feedByURL(ctx, args[0])
	if err != nil {
		return err
	}

	if err := h.Subs.Unfollow(ctx, user.ID, feed.ID); err != nil {
		return fmt.Errorf("could not unfollow %s: %w", feed.URL, err)
	}
	fmt.Fprintf(h.Out, "%s unfollowed %s\n", user.Name, feed.Name)
	return nil
}

func (h *Handlers) feedByURL(ctx context.Context, feedURL string) (domain.Feed, error) {
	feed, ok, err := h.Subs.GetFeedByURL(ctx, feedURL)
	if err != nil {
		return domain.Feed{}, err
	}
	if !ok {
		return domain.Feed{}, fmt.Errorf("%w: no feed registered under %s", domain.ErrNotFound, feedURL)
	}
	return feed, nil
}
