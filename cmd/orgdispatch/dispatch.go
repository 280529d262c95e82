package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/jai-nexus/orgdispatch/pkg/config"
	"github.com/jai-nexus/orgdispatch/pkg/github"
	"github.com/jai-nexus/orgdispatch/pkg/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateChoice enforces the bool-as-string inputs the workflows expect,
// before any network activity.
func validateChoice(name, value string) error {
	if err := validate.Var(value, "oneof=true false"); err != nil {
		return fmt.Errorf("--%s must be true or false, got %q", name, value)
	}
	return nil
}

// authenticate performs the credential flow shared by every subcommand: mint
// the app assertion, resolve the installation on the org, exchange for an
// installation token.
func authenticate(ctx context.Context, cmd *cli.Command) (*config.Config, *github.Client, *github.InstallationToken, error) {
	log.Setup(cmd.String("log-level"))

	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.WithComponent("github").With("run_id", uuid.NewString()[:8])
	client := github.NewClient(cfg.APIBase, logger)

	if cfg.DebugDNS {
		client.Probe(ctx)
	}

	appJWT, err := github.NewAppJWT(cfg.AppID, []byte(cfg.PrivateKey), time.Now())
	if err != nil {
		return nil, nil, nil, err
	}

	installationID, err := client.ResolveInstallation(ctx, appJWT, cfg.Org)
	if err != nil {
		return nil, nil, nil, err
	}

	token, err := client.CreateInstallationToken(ctx, appJWT, installationID)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, client, token, nil
}

// dispatchWorkflow runs the full flow for one workflow dispatch and prints
// the confirmation. Inputs are rendered as canonical JSON so the output is
// stable across runs.
func dispatchWorkflow(ctx context.Context, cmd *cli.Command, workflowFile string, inputs map[string]string) error {
	cfg, client, token, err := authenticate(ctx, cmd)
	if err != nil {
		return err
	}

	if err := client.Dispatch(ctx, token.Token, cfg.Org, cfg.Repo, workflowFile, cfg.Branch, inputs); err != nil {
		return err
	}

	encoded, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("encode inputs: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.Root().Writer, "✓ Dispatched %s to %s/%s@%s with inputs=%s\n",
		workflowFile, cfg.Org, cfg.Repo, cfg.Branch, encoded)
	return nil
}
