// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Farmacia CLI application.
// It implements subcommands for signing in and out, browsing the catalog and
// managing the shopping cart using the Cobra CLI framework. The package wires
// the session, credential store and REST client together per invocation and
// renders results with pterm.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"farmacia/cli/internal/config"
)

var (
	showVersion  bool
	verbose      bool
	autoTeardown bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "farmacia",
	Short:         "Farmacia CLI for the online pharmacy storefront",
	Long:          `Farmacia is a command-line client for the online pharmacy: sign in, browse products and manage your cart.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
		if config.Verbose() {
			verbose = true
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion(cmd.OutOrStdout())
			return nil
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and backend information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging (also FARMACIA_VERBOSE=1)")
	rootCmd.PersistentFlags().BoolVar(&autoTeardown, "end-session-on-401", false, "Sign out locally as soon as the server rejects the stored token")
}
