// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// notificationsCmd manages push notification registration by hand.
var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"push"},
	Short:   "Register or deactivate this device for push notifications",
}

var notificationsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register FARMACIA_PUSH_TOKEN for the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if _, err := a.requireSession(); err != nil {
			return err
		}

		if err := a.push.Register(cmd.Context()); err != nil {
			return a.requestFailed(cmd.Context(), err, "registering for notifications")
		}
		pterm.Success.Println("Device registration sent (skipped when no push token is configured)")
		return nil
	},
}

var notificationsDeactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Deactivate every push token of the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if _, err := a.requireSession(); err != nil {
			return err
		}

		if err := a.push.DeactivateAll(cmd.Context()); err != nil {
			return a.requestFailed(cmd.Context(), err, "deactivating notifications")
		}
		pterm.Success.Println("Push notifications deactivated for every device")
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsRegisterCmd, notificationsDeactivateCmd)
	rootCmd.AddCommand(notificationsCmd)
}
