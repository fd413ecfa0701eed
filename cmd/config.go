// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/config"
)

// configCmd shows the non-secret settings stored in the config file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI settings",
	Long: `The config command shows the settings stored in the config file. FARMACIA_*
environment variables override them for a single run.

Keys: log_level, keyring_backend, platform, mode.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		rows := pterm.TableData{{"Key", "Value"}}
		for _, k := range config.Keys {
			v, _ := cfg.Get(k)
			if v == "" {
				v = "(default)"
			}
			rows = append(rows, []string{k, v})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change a setting (no value resets it)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		value := ""
		if len(args) == 2 {
			value = args[1]
		}
		if cfg, err = cfg.Set(args[0], value); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		v, _ := cfg.Get(args[0])
		pterm.Success.Printf("%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
