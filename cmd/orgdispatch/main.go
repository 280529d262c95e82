package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	cli "github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "orgdispatch",
		Usage: "Dispatch org maintenance workflows via the GitHub App",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "app-id",
				Usage:    "GitHub App ID",
				Required: true,
				Sources:  cli.EnvVars("ORG_APP_ID"),
			},
			&cli.StringFlag{
				Name:     "private-key",
				Usage:    "GitHub App private key (full PEM, BEGIN/END lines included)",
				Required: true,
				Sources:  cli.EnvVars("ORG_APP_PRIVATE_KEY"),
			},
			&cli.StringFlag{
				Name:    "org",
				Usage:   "organization login",
				Value:   "jai-nexus",
				Sources: cli.EnvVars("ORG"),
			},
			&cli.StringFlag{
				Name:    "repo",
				Usage:   "repository hosting the workflows",
				Value:   ".github",
				Sources: cli.EnvVars("REPO"),
			},
			&cli.StringFlag{
				Name:    "branch",
				Usage:   "ref workflows are dispatched on",
				Value:   "main",
				Sources: cli.EnvVars("BRANCH"),
			},
			&cli.StringFlag{
				Name:    "api",
				Usage:   "GitHub API base URL",
				Value:   "https://api.github.com",
				Sources: cli.EnvVars("GITHUB_API"),
			},
			&cli.BoolFlag{
				Name:    "debug-dns",
				Usage:   "run a DNS/connectivity self-test before the main flow",
				Sources: cli.EnvVars("DEBUG_DNS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			NewCheckCommand(),
			NewTasksCommand(),
			NewInventoryCommand(),
			NewHardenCommand(),
		},
	}
}
