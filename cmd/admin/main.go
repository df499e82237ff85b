// Package main is the yatube administration tool.
// Usage: yatube-admin <command> [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"yatube/internal/config"
	"yatube/internal/observability/logging"
)

const usage = `Usage: yatube-admin <command> [flags]

Commands:
  migrate [-down]                                  apply (or roll back) schema migrations
  group create -title T [-slug S] [-description D] create a community group
  group delete -slug S                             delete a group; its posts keep no group
  group list                                       print every group
  seed -file groups.yaml                           create groups and posts from a YAML file
  cache clear                                      drop every cached page (redis backend)
  token -user NAME [-ttl 24h]                      print a signed session token
`

var errUsage = errors.New("invalid usage")

// cli carries what every command needs.
type cli struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewText(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{cfg: cfg, stdout: os.Stdout, stderr: os.Stderr, logger: logger}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: command is required", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		return c.migrate(rest)
	case "group":
		return c.group(ctx, rest)
	case "seed":
		return c.seed(ctx, rest)
	case "cache":
		return c.cache(ctx, rest)
	case "token":
		return c.token(rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
