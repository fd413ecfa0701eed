// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"slices"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/auth"
)

var nukeYes bool

// storageCmd inspects the credential store.
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect or wipe the local credential store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		keys, err := a.keychain.Keys()
		if err != nil {
			return err
		}
		for _, k := range []string{auth.KeyAccessToken, auth.KeyUser} {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)

		rows := pterm.TableData{{"Key", "Value"}}
		for _, k := range keys {
			_, ok, err := a.keychain.Get(k)
			status := "EXISTS"
			switch {
			case err != nil:
				status = "ERROR: " + err.Error()
			case !ok:
				status = "NULL"
			}
			rows = append(rows, []string{k, status})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}

		st := a.session.Restore()
		pterm.Println()
		pterm.Printf("Session: %s\n", st.Phase)
		if st.User != nil {
			pterm.Printf("User:    %s <%s>\n", st.User.DisplayName(), st.User.Email)
		}
		return nil
	},
}

var storageNukeCmd = &cobra.Command{
	Use:   "nuke",
	Short: "Delete every entry in the credential store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirm(os.Stdin, nukeYes, "Delete every saved farmacia credential?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.keychain.Wipe(); err != nil {
			pterm.Error.Println("Some entries could not be deleted")
			return err
		}
		pterm.Success.Println("Credential store wiped")
		return nil
	},
}

func init() {
	storageNukeCmd.Flags().BoolVarP(&nukeYes, "yes", "y", false, "Do not ask for confirmation")
	storageCmd.AddCommand(storageNukeCmd)
	rootCmd.AddCommand(storageCmd)
}
