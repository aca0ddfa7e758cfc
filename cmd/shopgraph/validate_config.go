// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shopgraph/shopgraph/internal/config"
)

// NewValidateConfigCmd creates the validate-config subcommand.
func NewValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config <file>",
		Short: "Validate a config file without starting the server",
		Long: `Validates a YAML config file against the configuration schema.
Does NOT start the server or require a database connection.
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch config errors early:
  shopgraph validate-config shopgraph.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(cmd, args[0])
		},
	}
}

func runValidateConfig(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return oops.Code("CONFIG_READ_FAILED").With("path", path).Wrap(err)
	}

	if err := config.ValidateSchema(data); err != nil {
		slog.Error("config validation failed", "path", path, "error", err)
		return err
	}

	// Schema passed; also run the cross-field checks Load applies.
	if _, err := config.Load(path, nil); err != nil {
		slog.Error("config validation failed", "path", path, "error", err)
		return err
	}

	cmd.Printf("%s is valid\n", path)
	return nil
}
