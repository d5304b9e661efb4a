package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"gator/domain"
)

const (
	usersNameKey       = "users_name_key"
	feedsURLKey        = "feeds_url_key"
	feedFollowsPairKey = "feed_follows_user_feed_key"
)

// translate maps driver errors onto the domain taxonomy. Unrecognized errors pass through.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code.Name() {
	case "unique_violation":
		switch pqErr.Constraint {
		case usersNameKey:
			return fmt.Errorf("%w: %s", domain.ErrUserExists, pqErr.Detail)
		case feedsURLKey:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateFeed, pqErr.Detail)
		case feedFollowsPairKey:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyFollowing, pqErr.Detail)
		}
	case "foreign_key_violation":
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pqErr.Detail)
	}

	return err
}
