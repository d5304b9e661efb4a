package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrUnauthenticated = errors.New("current user is not logged in")
	ErrUsage           = errors.New("usage")

	ErrNotFound         = errors.New("not found")
	ErrUserExists       = errors.New("user is already registered")
	ErrDuplicateFeed    = errors.New("a feed with this url already exists")
	ErrAlreadyFollowing = errors.New("already following this feed")

	ErrMalformedFeed   = errors.New("malformed feed")
	ErrMissingMetadata = errors.New("missing required metadata")

	ErrDuplicateCommand = errors.New("command already registered")
	ErrUnknownCommand   = errors.New("not a registered command")
)

// FetchError reports a transport, status or parse failure while retrieving a feed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
