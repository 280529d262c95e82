package main

import (
	"context"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"
)

func NewCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify access and list available workflows",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, client, token, err := authenticate(ctx, cmd)
			if err != nil {
				return err
			}

			workflows, err := client.ListWorkflows(ctx, token.Token, cfg.Org, cfg.Repo)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(workflows))
			for _, w := range workflows {
				name := w.Name
				if name == "" {
					name = w.Path
				}
				names = append(names, name)
			}

			_, _ = fmt.Fprintf(cmd.Root().Writer, "Workflows (%d): %s\n", len(names), strings.Join(names, ", "))
			return nil
		},
	}
}
