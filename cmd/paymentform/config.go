package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"
)

func configCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: state.runConfigValidate,
			},
			{
				Name:   "show",
				Usage:  "Print the effective payment sheet configuration as JSON",
				Action: state.runConfigShow,
			},
		},
	}
}

func (s *appState) runConfigValidate(c *cli.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}

func (s *appState) runConfigShow(c *cli.Context) error {
	out, err := json.MarshalIndent(s.cfg.PaymentSheet, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return writeOutput(c, out)
}
