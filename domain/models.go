package domain

import "time"

type User struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}

type Feed struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	URL       string
	UserID    string
}

// FeedFollow is a subscription edge between a user and a feed.
type FeedFollow struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
	FeedID    string
}

// FeedFollowDetail is a FeedFollow joined with its feed and user.
type FeedFollowDetail struct {
	FeedFollow
	FeedName string
	FeedURL  string
	UserName string
}

// FeedWithOwner pairs a feed with the user that created it.
type FeedWithOwner struct {
	Feed  Feed
	Owner User
}

// RSSFeed is a normalized feed document. It is produced on every fetch and never stored.
type RSSFeed struct {
	Channel RSSChannel `json:"channel"`
}

type RSSChannel struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Items       []RSSItem `json:"item"`
}

type RSSItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
}
