// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"farmacia/cli/internal/config"
	"farmacia/cli/internal/manifest"
	"farmacia/cli/internal/model"
	"farmacia/cli/internal/push"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version and backend information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer) {
	platform := push.DefaultPlatform()
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}
	cfg = cfg.ApplyEnv()
	if p, err := model.ParsePlatform(cfg.Platform); err == nil {
		platform = p
	}
	m := manifest.GetEndpoints(cfg.Mode, platform)
	fmt.Fprintf(w, "farmacia %s\nmode     %s\nplatform %s\nbackend  %s\n", Version, m.Mode, m.Platform, m.BaseURL)
}
