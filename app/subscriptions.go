package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gator/domain"
)

// ownerLookups bounds the concurrent user lookups issued by ListFeedsWithOwners.
const ownerLookups = 8

// SubscriptionService creates, queries and removes feeds and feed follows.
// Uniqueness of feed URLs and (user, feed) pairs is enforced by the store.
type SubscriptionService struct {
	users   domain.UserRepository
	feeds   domain.FeedRepository
	follows domain.FollowRepository
}

func NewSubscriptionService(store domain.Store) *SubscriptionService {
	return &SubscriptionService{users: store, feeds: store, follows: store}
}

// AddFeed stores a new feed owned by ownerID. It does not follow the feed on the owner's behalf.
func (s *SubscriptionService) AddFeed(ctx context.Context, name, url, ownerID string) (domain.Feed, error) {
	name, url = strings.TrimSpace(name), strings.TrimSpace(url)
	if name == "" || url == "" {
		return domain.Feed{}, fmt.Errorf("%w: feed name and url are required", domain.ErrUsage)
	}

	feed, err := s.feeds.InsertFeed(ctx, name, url, ownerID)
	if err != nil {
		return domain.Feed{}, fmt.Errorf("could not add feed %q: %w", url, err)
	}

	log.WithFields(log.Fields{
		"feed_id": feed.ID,
		"url":     feed.URL,
		"owner":   ownerID,
	}).Debug("Added feed")
	return feed, nil
}

// AddFeedAndFollow adds a feed and follows it as its owner. If the follow fails the
// feed is deleted again, so no feed is left without its owner's follow.
func (s *SubscriptionService) AddFeedAndFollow(ctx context.Context, name, url, ownerID string) (domain.Feed, domain.FeedFollowDetail, error) {
	feed, err := s.AddFeed(ctx, name, url, ownerID)
	if err != nil {
		return domain.Feed{}, domain.FeedFollowDetail{}, err
	}

	follow, err := s.follows.InsertFeedFollow(ctx, ownerID, feed.ID)
	if err != nil {
		if delErr := s.feeds.DeleteFeed(ctx, feed.ID); delErr != nil {
			log.WithError(delErr).WithField("feed_id", feed.ID).Error("Could not remove unfollowed feed")
			return domain.Feed{}, domain.FeedFollowDetail{}, errors.Join(err, delErr)
		}
		return domain.Feed{}, domain.FeedFollowDetail{}, fmt.Errorf("could not follow feed %q: %w", url, err)
	}
	return feed, follow, nil
}

// GetFeedByURL reports ok == false when no feed has the url.
func (s *SubscriptionService) GetFeedByURL(ctx context.Context, url string) (domain.Feed, bool, error) {
	feed, err := s.feeds.GetFeedByURL(ctx, strings.TrimSpace(url))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Feed{}, false, nil
	}
	if err != nil {
		return domain.Feed{}, false, err
	}
	return feed, true, nil
}

func (s *SubscriptionService) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	return s.feeds.ListFeeds(ctx)
}

// ListFeedsWithOwners resolves every feed's owner concurrently. Each result is written
// to the slot of its feed, so the output keeps the feed order of ListFeeds.
func (s *SubscriptionService) ListFeedsWithOwners(ctx context.Context) ([]domain.FeedWithOwner, error) {
	feeds, err := s.feeds.ListFeeds(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.FeedWithOwner, len(feeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookups)
	for i, feed := range feeds {
		g.Go(func() error {
			owner, err := s.users.GetUserByID(gctx, feed.UserID)
			if err != nil {
				return fmt.Errorf("owner of feed %q: %w", feed.URL, err)
			}
			out[i] = domain.FeedWithOwner{Feed: feed, Owner: owner}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Follow subscribes userID to feedID. A pair that is already followed, including one
// inserted concurrently by another process, fails with domain.ErrAlreadyFollowing.
func (s *SubscriptionService) Follow(ctx context.Context, userID, feedID string) (domain.FeedFollowDetail, error) {
	follow, err := s.follows.InsertFeedFollow(ctx, userID, feedID)
	if err != nil {
		return domain.FeedFollowDetail{}, err
	}

	log.WithFields(log.Fields{
		"user": follow.UserName,
		"feed": follow.FeedURL,
	}).Debug("Followed feed")
	return follow, nil
}

// Unfollow removes the (userID, feedID) pair. Removing a pair that does not exist is not an error.
func (s *SubscriptionService) Unfollow(ctx context.Context, userID, feedID string) error {
	return s.follows.DeleteFeedFollow(ctx, userID, feedID)
}

func (s *SubscriptionService) ListFollowsForUser(ctx context.Context, userID string) ([]domain.FeedFollowDetail, error) {
	return s.follows.ListFeedFollowsForUser(ctx, userID)
}
