package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	cli "github.com/urfave/cli/v3"
)

// Config carries everything a single invocation needs. It is built once from
// the parsed command line and passed explicitly into each component; nothing
// reads the environment after this point.
type Config struct {
	AppID      int64  `validate:"required,gt=0"`
	PrivateKey string `validate:"required"`
	Org        string `validate:"required"`
	Repo       string `validate:"required"`
	Branch     string `validate:"required"`
	APIBase    string `validate:"required,url"`
	DebugDNS   bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FromCommand reads the global flags into a validated Config.
func FromCommand(cmd *cli.Command) (*Config, error) {
	cfg := &Config{
		AppID:      int64(cmd.Int("app-id")),
		PrivateKey: cmd.String("private-key"),
		Org:        cmd.String("org"),
		Repo:       cmd.String("repo"),
		Branch:     cmd.String("branch"),
		APIBase:    cmd.String("api"),
		DebugDNS:   cmd.Bool("debug-dns"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
