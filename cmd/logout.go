// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/auth"
	"farmacia/cli/internal/logging"
)

// logoutCmd signs out, best effort on the server and always locally.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove saved credentials",
	Long: `The logout command deactivates this account's push tokens, tells the server to
end the session and removes the access token and profile from the keychain.

The server-side steps are best effort: if the network is down they are skipped
with a warning, and local credentials are removed regardless.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var report auth.LogoutReport
		_ = spin(cmd.OutOrStdout(), "Signing out", func() error {
			report = a.session.Logout(cmd.Context())
			return nil
		})

		for _, st := range report.Steps {
			switch {
			case st.Err != nil:
				pterm.Warning.Println(logging.PresentError(string(st.Step), st.Err))
			case st.Skipped && verbose:
				pterm.Debug.Printf("%s skipped: %s\n", st.Step, st.Reason)
			case verbose:
				pterm.Debug.Printf("%s ok\n", st.Step)
			}
		}
		if report.Clear == auth.ClearFailed {
			pterm.Error.Println("Some credentials could not be removed from the keychain. Try 'farmacia storage nuke'.")
			return nil
		}
		pterm.Println("✅ Signed out. Saved credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
