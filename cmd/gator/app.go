package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"gator/adapter/postgres"
	"gator/adapter/rss"
	"gator/app"
	"gator/domain"
	"gator/internal/cmd"
	"gator/internal/config"
	"gator/internal/db"
	"gator/internal/helper"
)

func newApp(stdout io.Writer) *cli.App {
	// Only used for names and help text; handlers are rebuilt with live dependencies on run.
	listing, err := cmd.NewCommands(&cmd.Handlers{})
	if err != nil {
		panic(err)
	}

	commands := make([]*cli.Command, 0, len(listing.Names()))
	for _, name := range listing.Names() {
		usage, _ := listing.Usage(name)
		commands = append(commands, &cli.Command{
			Name:            name,
			Usage:           usage.Help,
			ArgsUsage:       usage.Args,
			SkipFlagParsing: true,
			Action: func(c *cli.Context) error {
				return run(c, stdout, listing, name, c.Args().Slice())
			},
		})
	}

	return &cli.App{
		Name:      "gator",
		Usage:     "A multi-user RSS feed aggregator for the terminal",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the session file (default ~/.gatorconfig.toml)",
				EnvVars: []string{"GATOR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: trace, debug, info, warn, error",
				EnvVars: []string{"GATOR_LOG_LEVEL"},
				Value:   "warn",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Give up on a command after this long",
				Value: 30 * time.Second,
			},
		},
		Commands: commands,
		Before: func(c *cli.Context) error {
			level, err := log.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log.SetOutput(os.Stderr)
			log.SetLevel(level)
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				helper.PrintHelp(stdout, listing.Help())
				return cli.Exit("", 1)
			}
			return run(c, stdout, listing, c.Args().First(), c.Args().Tail())
		},
	}
}

// run loads the session, connects to the database and dispatches one command.
// Unknown command names are rejected before the database is touched.
func run(c *cli.Context, stdout io.Writer, listing *cmd.Commands, name string, args []string) error {
	path := c.String("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Read(path)
	if err != nil {
		return err
	}
	if _, ok := listing.Usage(name); !ok {
		return fmt.Errorf("%s %w", name, domain.ErrUnknownCommand)
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	conn, err := db.Open(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := postgres.Migrate(cfg.DBURL); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	store := postgres.New(conn)
	commands, err := cmd.NewCommands(&cmd.Handlers{
		Users:   app.NewUserService(store),
		Subs:    app.NewSubscriptionService(store),
		Session: cfg,
		Fetcher: rss.NewHTTPFetcher(&http.Client{}),
		Out:     stdout,
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"config": cfg.Path(), "command": name}).Debug("Session loaded")
	return commands.Run(ctx, name, args...)
}
