// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"farmacia/cli/internal/backend"
	apperrors "farmacia/cli/internal/errors"
	"farmacia/cli/internal/httperrors"
	"farmacia/cli/internal/model"
	"farmacia/cli/internal/terminal"
)

var regForm model.Registration

// registerCmd creates a new store account.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new store account",
	Long: `The register command creates a store account. Missing fields are prompted
for; the password needs at least 6 characters. Registering does not sign you
in: run 'farmacia login' afterwards.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		form, err := readRegistration(cmd)
		if err != nil {
			return err
		}
		if err := form.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ValidationFailed, "check your input", err)
		}

		err = spin(cmd.OutOrStdout(), "Creating account", func() error {
			return a.api.Register(cmd.Context(), form)
		})
		switch {
		case errors.Is(err, backend.ErrEmailTaken):
			pterm.Error.Println("That email address is already registered")
			return err
		case err != nil:
			return httperrors.FormatNetworkError(err, "creating your account", a.manifest.Host())
		}

		pterm.Success.Println("Account created. You can now sign in with 'farmacia login'.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&regForm.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&regForm.FirstName, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&regForm.LastName, "last-name", "", "Last name")
	rootCmd.AddCommand(registerCmd)
}

func readRegistration(cmd *cobra.Command) (model.Registration, error) {
	p := terminal.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	form := regForm

	fields := []struct {
		label string
		dst   *string
	}{
		{"Email: ", &form.Email},
		{"First name: ", &form.FirstName},
		{"Last name: ", &form.LastName},
	}
	for _, f := range fields {
		if *f.dst != "" {
			continue
		}
		v, err := p.Line(f.label)
		if err != nil {
			return form, fmt.Errorf("read %s: %w", f.label, err)
		}
		*f.dst = v
	}

	password, err := p.Secret("Password: ")
	if errors.Is(err, terminal.ErrNotInteractive) {
		password, err = p.Line("Password: ")
	}
	if err != nil {
		return form, fmt.Errorf("read password: %w", err)
	}
	form.Password = password

	if _, label := model.PasswordStrength(password); password != "" {
		pterm.Info.Printf("Password strength: %s\n", label)
	}
	return form.Normalize(), nil
}
