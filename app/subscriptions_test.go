package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gator/adapter/memory"
	"gator/domain"
)

func newServices(t *testing.T) (*UserService, *SubscriptionService) {
	t.Helper()
	store := memory.New()
	return NewUserService(store), NewSubscriptionService(store)
}

func TestAddFeed(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)

	feed, err := subs.AddFeed(ctx, "Blog", "http://x/feed.xml", lane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blog", feed.Name)
	assert.Equal(t, "http://x/feed.xml", feed.URL)
	assert.Equal(t, lane.ID, feed.UserID)

	follows, err := subs.ListFollowsForUser(ctx, lane.ID)
	require.NoError(t, err)
	assert.Empty(t, follows, "adding a feed does not follow it")

	_, err = subs.AddFeed(ctx, "Again", "http://x/feed.xml", lane.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateFeed)

	_, err = subs.AddFeed(ctx, "", "http://y/feed.xml", lane.ID)
	assert.ErrorIs(t, err, domain.ErrUsage)

	_, err = subs.AddFeed(ctx, "Orphan", "http://y/feed.xml", "no-such-user")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetFeedByURL(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)
	added, err := subs.AddFeed(ctx, "Blog", "http://x/feed.xml", lane.ID)
	require.NoError(t, err)

	feed, ok, err := subs.GetFeedByURL(ctx, "http://x/feed.xml")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, added, feed)

	_, ok, err = subs.GetFeedByURL(ctx, "http://nowhere/feed.xml")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListFeedsWithOwnersKeepsOrder(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	var owners []domain.User
	for i := 0; i < 5; i++ {
		u, err := users.Register(ctx, fmt.Sprintf("user-%d", i))
		require.NoError(t, err)
		owners = append(owners, u)
	}
	for i := 0; i < 20; i++ {
		owner := owners[i%len(owners)]
		_, err := subs.AddFeed(ctx, fmt.Sprintf("Feed %d", i), fmt.Sprintf("http://x/%d.xml", i), owner.ID)
		require.NoError(t, err)
	}

	feeds, err := subs.ListFeeds(ctx)
	require.NoError(t, err)
	withOwners, err := subs.ListFeedsWithOwners(ctx)
	require.NoError(t, err)

	require.Len(t, withOwners, len(feeds))
	for i, f := range withOwners {
		assert.Equal(t, feeds[i], f.Feed)
		assert.Equal(t, f.Feed.UserID, f.Owner.ID)
		assert.Equal(t, owners[i%len(owners)].Name, f.Owner.Name)
	}
}

func TestListFeedsWithOwnersEmpty(t *testing.T) {
	_, subs := newServices(t)

	withOwners, err := subs.ListFeedsWithOwners(context.Background())
	require.NoError(t, err)
	assert.Empty(t, withOwners)
}

func TestFollowAndUnfollow(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)
	kim, err := users.Register(ctx, "kim")
	require.NoError(t, err)
	feed, err := subs.AddFeed(ctx, "Blog", "http://x/feed.xml", lane.ID)
	require.NoError(t, err)

	follow, err := subs.Follow(ctx, kim.ID, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, "kim", follow.UserName)
	assert.Equal(t, "Blog", follow.FeedName)
	assert.Equal(t, "http://x/feed.xml", follow.FeedURL)

	_, err = subs.Follow(ctx, kim.ID, feed.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)

	follows, err := subs.ListFollowsForUser(ctx, kim.ID)
	require.NoError(t, err)
	require.Len(t, follows, 1, "a failed follow leaves the follow set unchanged")
	assert.Equal(t, follow.FeedFollow, follows[0].FeedFollow)

	require.NoError(t, subs.Unfollow(ctx, kim.ID, feed.ID))
	require.NoError(t, subs.Unfollow(ctx, kim.ID, feed.ID), "unfollowing twice is a no-op")

	follows, err = subs.ListFollowsForUser(ctx, kim.ID)
	require.NoError(t, err)
	assert.Empty(t, follows)

	_, err = subs.Follow(ctx, kim.ID, feed.ID)
	assert.NoError(t, err, "a pair can be followed again after unfollowing")
}

func TestConcurrentFollowCreatesOneRow(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)
	feed, err := subs.AddFeed(ctx, "Blog", "http://x/feed.xml", lane.ID)
	require.NoError(t, err)

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = subs.Follow(ctx, lane.ID, feed.ID)
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyFollowing)
	}
	assert.Equal(t, 1, succeeded)

	follows, err := subs.ListFollowsForUser(ctx, lane.ID)
	require.NoError(t, err)
	assert.Len(t, follows, 1)
}

type failingFollows struct {
	*memory.Store
	err error
}

func (s failingFollows) InsertFeedFollow(context.Context, string, string) (domain.FeedFollowDetail, error) {
	return domain.FeedFollowDetail{}, s.err
}

func TestAddFeedAndFollow(t *testing.T) {
	ctx := context.Background()
	users, subs := newServices(t)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)

	feed, follow, err := subs.AddFeedAndFollow(ctx, "Blog", "http://x/feed.xml", lane.ID)
	require.NoError(t, err)
	assert.Equal(t, feed.ID, follow.FeedID)
	assert.Equal(t, "lane", follow.UserName)

	_, _, err = subs.AddFeedAndFollow(ctx, "Again", "http://x/feed.xml", lane.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateFeed)
}

func TestAddFeedAndFollowRemovesFeedWhenFollowFails(t *testing.T) {
	ctx := context.Background()
	store := failingFollows{Store: memory.New(), err: errors.New("connection reset")}
	users, subs := NewUserService(store), NewSubscriptionService(store)

	lane, err := users.Register(ctx, "lane")
	require.NoError(t, err)

	_, _, err = subs.AddFeedAndFollow(ctx, "Blog", "http://x/feed.xml", lane.ID)
	assert.ErrorIs(t, err, store.err)

	feeds, err := subs.ListFeeds(ctx)
	require.NoError(t, err)
	assert.Empty(t, feeds)

	_, ok, err := subs.GetFeedByURL(ctx, "http://x/feed.xml")
	require.NoError(t, err)
	assert.False(t, ok)
}
