package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"gator/domain"
	"gator/internal/helper"
)

// Handler runs one command with its positional arguments.
type Handler func(ctx context.Context, args ...string) error

type command struct {
	usage   helper.Usage
	handler Handler
}

// Commands maps command names to handlers. The zero value is not usable; use NewRegistry.
type Commands struct {
	names    []string
	commands map[string]command
}

func NewRegistry() *Commands {
	return &Commands{commands: make(map[string]command)}
}

// Register adds h under name. usage.Name is set to name.
func (c *Commands) Register(name string, usage helper.Usage, h Handler) error {
	if _, ok := c.commands[name]; ok {
		return fmt.Errorf("%s %w", name, domain.ErrDuplicateCommand)
	}
	usage.Name = name
	c.commands[name] = command{usage: usage, handler: h}
	c.names = append(c.names, name)
	return nil
}

// Run dispatches to the handler registered under name. Handler errors are returned unchanged.
func (c *Commands) Run(ctx context.Context, name string, args ...string) error {
	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("%s %w", name, domain.ErrUnknownCommand)
	}

	log.WithFields(log.Fields{"command": name, "args": args}).Debug("Running command")
	return cmd.handler(ctx, args...)
}

// Names lists registered commands in registration order.
func (c *Commands) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Commands) Usage(name string) (helper.Usage, bool) {
	cmd, ok := c.commands[name]
	return cmd.usage, ok
}

func (c *Commands) Help() []helper.Usage {
	out := make([]helper.Usage, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.commands[name].usage)
	}
	return out
}
