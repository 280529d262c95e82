package main

import (
	"context"

	cli "github.com/urfave/cli/v3"
)

func NewInventoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "Run org_inventory.yml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "subset",
				Usage: "comma-separated repo names",
				Value: "",
			},
			&cli.StringFlag{
				Name:  "issue",
				Usage: "issue number to append the inventory to (optional)",
				Value: "",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return dispatchWorkflow(ctx, cmd, "org_inventory.yml", map[string]string{
				"subset":       cmd.String("subset"),
				"issue_number": cmd.String("issue"),
			})
		},
	}
}
