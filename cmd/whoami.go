// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/model"
)

// whoamiCmd shows the signed-in account from the stored session.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show current signed-in account",
	Long: `The whoami command shows the account stored in the keychain. It does not
contact the server; use 'farmacia cart' to check that the session is still
accepted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st := a.session.Restore()
		if !st.IsAuthenticated() {
			showNotSignedIn()
			return nil
		}
		pterm.Println(getWhoAmIPhrase(*st.User))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// getWhoAmIPhrase returns a friendly phrase with the user's identity
func getWhoAmIPhrase(u model.UserProfile) string {
	return fmt.Sprintf("👤 Current user: %s <%s> (id %d)", u.DisplayName(), u.Email, u.ID)
}
