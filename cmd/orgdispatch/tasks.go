package main

import (
	"context"

	cli "github.com/urfave/cli/v3"
)

func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Run org_tasks.yml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "publish",
				Usage: "publish to public-nexus (true or false)",
				Value: "true",
			},
			&cli.StringFlag{
				Name:  "subset",
				Usage: "comma-separated repo names (optional)",
				Value: "",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			publish := cmd.String("publish")
			if err := validateChoice("publish", publish); err != nil {
				return err
			}

			return dispatchWorkflow(ctx, cmd, "org_tasks.yml", map[string]string{
				"publish": publish,
				"subset":  cmd.String("subset"),
			})
		},
	}
}
