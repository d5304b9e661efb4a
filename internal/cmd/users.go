package cmd

import (
	"context"
	"fmt"

	"gator/domain"
)

func (h *Handlers) Login(ctx context.Context, args ...string) error {
	if len(args) < 1 {
		return usageError("login", "<name>")
	}
	name := args[0]

	if _, ok, err := h.Users.GetByName(ctx, name); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: %s is not a registered user", domain.ErrNotFound, name)
	}

	if err := h.Session.SetCurrentUser(name); err != nil {
		return err
	}
	fmt.Fprintf(h.Out, "Current user has been set to %s\n", name)
	return nil
}

func (h *Handlers) Register(ctx context.Context, args ...string) error {
	if len(args) < 1 {
		return usageError("register", "<name>")
	}

	user, err := h.Users.Register(ctx, args[0])
	if err != nil {
		return err
	}
	if err := h.Session.SetCurrentUser(user.Name); err != nil {
		return err
	}

	fmt.Fprintf(h.Out, "%s registered as a user\n", user.Name)
	fmt.Fprintf(h.Out, "* ID:            %s\n", user.ID)
	fmt.Fprintf(h.Out, "* Created:       %s\n", user.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (h *Handlers) Reset(ctx context.Context, _ ...string) error {
	if err := h.Users.Reset(ctx); err != nil {
		return fmt.Errorf("could not reset database: %w", err)
	}
	fmt.Fprintln(h.Out, "Database has been reset")
	return nil
}

func (h *Handlers) ListUsers(ctx context.Context, _ ...string) error {
	users, err := h.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("could not list users: %w", err)
	}
	current, err := h.Session.CurrentUser()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Name == current {
			fmt.Fprintf(h.Out, "* %s (current)\n", u.Name)
			continue
		}
		fmt.Fprintf(h.Out, "* %s\n", u.Name)
	}
	return nil
}
