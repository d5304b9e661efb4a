package domain

import (
	"context"
)

// UserRepository is the persistence port for users.
// Lookups return ErrNotFound when no row matches.
type UserRepository interface {
	InsertUser(ctx context.Context, name string) (User, error)
	GetUserByName(ctx context.Context, name string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteAllUsers(ctx context.Context) error
}

// FeedRepository is the persistence port for feeds.
type FeedRepository interface {
	InsertFeed(ctx context.Context, name, url, userID string) (Feed, error)
	GetFeedByURL(ctx context.Context, url string) (Feed, error)
	ListFeeds(ctx context.Context) ([]Feed, error)
	// DeleteFeed removes the feed and its follows. Deleting a missing feed is not an error.
	DeleteFeed(ctx context.Context, id string) error
}

// FollowRepository is the persistence port for feed follows.
// InsertFeedFollow must reject a duplicate (user, feed) pair with ErrAlreadyFollowing.
type FollowRepository interface {
	InsertFeedFollow(ctx context.Context, userID, feedID string) (FeedFollowDetail, error)
	DeleteFeedFollow(ctx context.Context, userID, feedID string) error
	ListFeedFollowsForUser(ctx context.Context, userID string) ([]FeedFollowDetail, error)
}

// Store is everything the application needs from the relational store.
type Store interface {
	UserRepository
	FeedRepository
	FollowRepository
}

// RSSFetcher fetches and parses RSS feeds.
type RSSFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*RSSFeed, error)
}

// Session holds the name of the logged in user. An empty name means nobody is logged in.
type Session interface {
	CurrentUser() (string, error)
	SetCurrentUser(name string) error
}
