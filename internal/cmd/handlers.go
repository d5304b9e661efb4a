// Package cmd implements the gator commands and the registry that dispatches them.
package cmd

import (
	"fmt"
	"io"

	"gator/app"
	"gator/domain"
	"gator/internal/helper"
)

// Handlers carries the dependencies shared by every command. Output goes to Out.
type Handlers struct {
	Users   *app.UserService
	Subs    *app.SubscriptionService
	Session domain.Session
	Fetcher domain.RSSFetcher
	Out     io.Writer
}

// NewCommands registers every gator command. Commands that act on behalf of a user
// are wrapped with LoggedIn.
func NewCommands(h *Handlers) (*Commands, error) {
	loggedIn := LoggedIn(h.Session, h.Users)

	reg := NewRegistry()
	for _, c := range []struct {
		name    string
		usage   helper.Usage
		handler Handler
	}{
		{"login", helper.Usage{Args: "<name>", Help: "log in as an existing user"}, h.Login},
		{"register", helper.Usage{Args: "<name>", Help: "create a user and log in as them"}, h.Register},
		{"reset", helper.Usage{Help: "delete every user, feed and follow"}, h.Reset},
		{"users", helper.Usage{Help: "list users, marking the current one"}, h.ListUsers},
		{"agg", helper.Usage{Args: "[url]", Help: "fetch a feed and print it as JSON"}, h.Agg},
		{"addfeed", helper.Usage{Args: "<name> <url>", Help: "add a feed and follow it"}, loggedIn(h.AddFeed)},
		{"feeds", helper.Usage{Help: "list every feed with its owner"}, h.Feeds},
		{"follow", helper.Usage{Args: "<url>", Help: "follow an existing feed"}, loggedIn(h.Follow)},
		{"following", helper.Usage{Help: "list the feeds you follow"}, loggedIn(h.Following)},
		{"unfollow", helper.Usage{Args: "<url>", Help: "stop following a feed"}, loggedIn(h.Unfollow)},
	} {
		if err := reg.Register(c.name, c.usage, c.handler); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func usageError(name, args string) error {
	return fmt.Errorf("%w: gator %s %s", domain.ErrUsage, name, args)
}

func (h *Handlers) printFeed(feed domain.Feed, owner string) {
	fmt.Fprintf(h.Out, "* ID:            %s\n", feed.ID)
	fmt.Fprintf(h.Out, "* Created:       %s\n", feed.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(h.Out, "* Updated:       %s\n", feed.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(h.Out, "* Name:          %s\n", feed.Name)
	fmt.Fprintf(h.Out, "* URL:           %s\n", feed.URL)
	fmt.Fprintf(h.Out, "* User:          %s\n", owner)
}
