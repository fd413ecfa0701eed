// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"farmacia/cli/internal/auth"
	apperrors "farmacia/cli/internal/errors"
	"farmacia/cli/internal/httperrors"
	"farmacia/cli/internal/model"
	"farmacia/cli/internal/terminal"
)

var loginEmail string

// loginCmd signs in with email and password.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in with your store account",
	Long: `The login command signs in with your email and password. The password is read
from the terminal without echo, or from the next line of stdin when it is not a
terminal. The access token and your profile are stored in the OS keychain.

After signing in, this device's push token (FARMACIA_PUSH_TOKEN) is registered
for notifications in the background. A failed registration never fails the login.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if st := a.session.Restore(); st.IsAuthenticated() {
			pterm.Printf("Already logged in as %s\n", st.User.Email)
			return nil
		}

		creds, err := readCredentials(cmd)
		if err != nil {
			return err
		}
		if err := creds.Validate(); err != nil {
			return apperrors.Wrap(apperrors.ValidationFailed, "check your input", err)
		}

		var user *model.UserProfile
		err = spin(out, "Signing in", func() error {
			var lerr error
			user, lerr = a.session.Login(ctx, creds)
			return lerr
		})
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			pterm.Error.Println("Invalid email or password")
			return err
		case apperrors.KindOf(err) == apperrors.PersistFailed:
			pterm.Error.Println("Signed in, but the session could not be saved to the keychain")
			return err
		case err != nil:
			return httperrors.FormatNetworkError(err, "signing in", a.manifest.Host())
		}

		pterm.Println(getRandomLoginGreeting(user.DisplayName()))

		_ = spin(out, "Registering this device for notifications", func() error {
			a.session.Wait()
			return nil
		})
		if st := a.session.Snapshot(); st.PushFailures > 0 && verbose {
			pterm.Warning.Printf("Push registration failed: %v\n", st.LastPushError)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (prompted when empty)")
	rootCmd.AddCommand(loginCmd)
}

// readCredentials prompts for whatever was not given as a flag and clears the
// prompts from the terminal afterwards.
func readCredentials(cmd *cobra.Command) (model.Credentials, error) {
	out := cmd.OutOrStdout()
	p := terminal.NewPrompter(cmd.InOrStdin(), out)
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	creds := model.Credentials{Email: loginEmail}
	const emailLabel = "Email: "
	if creds.Email == "" {
		email, err := p.Line(emailLabel)
		if err != nil {
			return creds, fmt.Errorf("read email: %w", err)
		}
		creds.Email = email
	}

	const passwordLabel = "Password: "
	password, err := p.Secret(passwordLabel)
	if errors.Is(err, terminal.ErrNotInteractive) {
		password, err = p.Line(passwordLabel)
	}
	if err != nil {
		return creds, fmt.Errorf("read password: %w", err)
	}
	creds.Password = password

	if interactive {
		width := terminal.Width()
		terminal.ClearPreviousLines(out, len(passwordLabel), width)
		if loginEmail == "" {
			terminal.ClearPreviousLines(out, len(emailLabel)+len(creds.Email), width)
		}
	}
	return creds, nil
}

// getRandomLoginGreeting returns a random greeting phrase with the user's name
func getRandomLoginGreeting(name string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"👋 Hello %s! Your cart is waiting.",
		"💊 Signed in as %s",
		"✅ Login successful! Hi %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], name)
}
