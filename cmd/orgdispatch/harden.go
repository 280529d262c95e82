package main

import (
	"context"

	cli "github.com/urfave/cli/v3"
)

func NewHardenCommand() *cli.Command {
	return &cli.Command{
		Name:  "harden",
		Usage: "Run org_hardener.yml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dry-run",
				Usage: "report what would change without changing it (true or false)",
				Value: "true",
			},
			&cli.StringFlag{
				Name:  "subset",
				Usage: "comma-separated repo names",
				Value: "",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dryRun := cmd.String("dry-run")
			if err := validateChoice("dry-run", dryRun); err != nil {
				return err
			}

			return dispatchWorkflow(ctx, cmd, "org_hardener.yml", map[string]string{
				"dry_run": dryRun,
				"subset":  cmd.String("subset"),
			})
		},
	}
}
