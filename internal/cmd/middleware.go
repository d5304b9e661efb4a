package cmd

import (
	"context"

	"gator/app"
	"gator/domain"
)

// UserHandler is a Handler that needs the logged-in user.
type UserHandler func(ctx context.Context, user domain.User, args ...string) error

// LoggedIn resolves the session user before calling the wrapped handler. An empty
// session or a name with no matching user fails with domain.ErrUnauthenticated.
func LoggedIn(session domain.Session, users *app.UserService) func(UserHandler) Handler {
	return func(next UserHandler) Handler {
		return func(ctx context.Context, args ...string) error {
			name, err := session.CurrentUser()
			if err != nil {
				return err
			}
			if name == "" {
				return domain.ErrUnauthenticated
			}

			user, ok, err := users.GetByName(ctx, name)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrUnauthenticated
			}
			return next(ctx, user, args...)
		}
	}
}
