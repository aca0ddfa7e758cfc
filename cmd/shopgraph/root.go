// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Shopgraph CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopgraph",
		Short: "Shopgraph - a modular GraphQL commerce server",
		Long: `Shopgraph serves a composed GraphQL schema for users, products,
categories, and orders on top of MongoDB, with token-based authentication.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewValidateConfigCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}
