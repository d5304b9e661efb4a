// Package memory is an in-process domain.Store with the same uniqueness and
// cascade rules as the Postgres schema.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gator/domain"
)

type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	users   []domain.User
	feeds   []domain.Feed
	follows []domain.FeedFollow
}

var _ domain.Store = (*Store)(nil)

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) InsertUser(_ context.Context, name string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByName(name); ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserExists, name)
	}

	now := s.now()
	user := domain.User{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now, Name: name}
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) GetUserByName(_ context.Context, name string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.userByName(name); ok {
		return user, nil
	}
	return domain.User{}, fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
}

func (s *Store) GetUserByID(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.userByID(id); ok {
		return user, nil
	}
	return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.User(nil), s.users...), nil
}

func (s *Store) DeleteAllUsers(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users, s.feeds, s.follows = nil, nil, nil
	return nil
}

func (s *Store) InsertFeed(_ context.Context, name, url, userID string) (domain.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userByID(userID); !ok {
		return domain.Feed{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	for _, f := range s.feeds {
		if f.URL == url {
			return domain.Feed{}, fmt.Errorf("%w: %s", domain.ErrDuplicateFeed, url)
		}
	}

	now := s.now()
	feed := domain.Feed{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now, Name: name, URL: url, UserID: userID}
	s.feeds = append(s.feeds, feed)
	return feed, nil
}

func (s *Store) GetFeedByURL(_ context.Context, url string) (domain.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.feeds {
		if f.URL == url {
			return f, nil
		}
	}
	return domain.Feed{}, fmt.Errorf("feed %s: %w", url, domain.ErrNotFound)
}

func (s *Store) ListFeeds(_ context.Context) ([]domain.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Feed(nil), s.feeds...), nil
}

func (s *Store) DeleteFeed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	feeds := s.feeds[:0]
	for _, f := range s.feeds {
		if f.ID != id {
			feeds = append(feeds, f)
		}
	}
	s.feeds = feeds

	follows := s.follows[:0]
	for _, ff := range s.follows {
		if ff.FeedID != id {
			follows = append(follows, ff)
		}
	}
	s.follows = follows
	return nil
}

func (s *Store) InsertFeedFollow(_ context.Context, userID, feedID string) (domain.FeedFollowDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.userByID(userID)
	if !ok {
		return domain.FeedFollowDetail{}, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	feed, ok := s.feedByID(feedID)
	if !ok {
		return domain.FeedFollowDetail{}, fmt.Errorf("feed %s: %w", feedID, domain.ErrNotFound)
	}
	for _, ff := range s.follows {
		if ff.UserID == userID && ff.FeedID == feedID {
			return domain.FeedFollowDetail{}, fmt.Errorf("%w: %s", domain.ErrAlreadyFollowing, feed.URL)
		}
	}

	now := s.now()
	follow := domain.FeedFollow{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now, UserID: userID, FeedID: feedID}
	s.follows = append(s.follows, follow)
	return detail(follow, feed, user), nil
}

func (s *Store) DeleteFeedFollow(_ context.Context, userID, feedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.follows[:0]
	for _, ff := range s.follows {
		if ff.UserID != userID || ff.FeedID != feedID {
			kept = append(kept, ff)
		}
	}
	s.follows = kept
	return nil
}

func (s *Store) ListFeedFollowsForUser(_ context.Context, userID string) ([]domain.FeedFollowDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.FeedFollowDetail
	for _, ff := range s.follows {
		if ff.UserID != userID {
			continue
		}
		user, _ := s.userByID(ff.UserID)
		feed, _ := s.feedByID(ff.FeedID)
		out = append(out, detail(ff, feed, user))
	}
	return out, nil
}

func (s *Store) userByName(name string) (domain.User, bool) {
	for _, u := range s.users {
		if u.Name == name {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) userByID(id string) (domain.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) feedByID(id string) (domain.Feed, bool) {
	for _, f := range s.feeds {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feed{}, false
}

func detail(ff domain.FeedFollow, feed domain.Feed, user domain.User) domain.FeedFollowDetail {
	return domain.FeedFollowDetail{
		FeedFollow: ff,
		FeedName:   feed.Name,
		FeedURL:    feed.URL,
		UserName:   user.Name,
	}
}
