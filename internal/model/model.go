// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package model contains the data shapes shared between the REST client, the
// session layer and the commands. JSON tags follow the storefront backend's
// wire format, which uses Spanish field names for catalog and cart resources.
package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// MinPasswordLength is the shortest password the storefront accepts.
const MinPasswordLength = 6

// ErrValidation marks client-side input validation failures.
var ErrValidation = errors.New("validation failed")

// UserProfile is the account returned by login and persisted alongside the token.
type UserProfile struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName returns "First Last", falling back to the email.
func (u UserProfile) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are present and the password is long enough.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if len(c.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	User        *UserProfile `json:"user"`
}

// Registration is the public account sign-up body.
type Registration struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Normalize trims surrounding whitespace from every field but the password.
func (r Registration) Normalize() Registration {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	return r
}

// Validate requires every field and a minimum password length.
func (r Registration) Validate() error {
	n := r.Normalize()
	if n.Email == "" || n.FirstName == "" || n.LastName == "" || strings.TrimSpace(n.Password) == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(n.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(n.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

// PasswordStrength scores pw from 0 to 3: one point for reaching the minimum
// length, one for mixing upper and lower case, one for a digit or symbol.
func PasswordStrength(pw string) (score int, label string) {
	var upper, lower, other bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		default:
			other = true
		}
	}
	if len(pw) >= MinPasswordLength {
		score++
	}
	if upper && lower {
		score++
	}
	if other {
		score++
	}
	return score, [...]string{"very weak", "weak", "fair", "strong"}[score]
}
