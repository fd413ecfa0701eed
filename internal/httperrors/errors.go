// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for storefront requests.
// It sorts transport failures and backend status codes into a small set of
// categories and prints troubleshooting hints for each.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	"farmacia/cli/internal/backend"
	"farmacia/cli/internal/logging"
)

// Category is the kind of failure a request ran into.
type Category int

const (
	Other Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Server
	Unauthorized
	Conflict
	Rejected
)

func (c Category) String() string {
	return [...]string{"other", "timeout", "dns", "connection_refused", "tls", "server", "unauthorized", "conflict", "rejected"}[c]
}

// Classify returns the category of err.
func Classify(err error) Category {
	if err == nil {
		return Other
	}
	if code := backend.StatusCode(err); code != 0 {
		switch {
		case code == http.StatusUnauthorized:
			return Unauthorized
		case code == http.StatusConflict:
			return Conflict
		case code >= 500:
			return Server
		default:
			return Rejected
		}
	}
	switch {
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	}
	return Other
}

// FormatNetworkError prints a friendly explanation of err and returns it
// wrapped with the action that failed.
func FormatNetworkError(err error, action, host string) error {
	if err == nil {
		return nil
	}
	displayErrorMessage(err, action, host)
	return fmt.Errorf("%s: %w", action, err)
}

// displayErrorMessage shows a formatted error message to the user based on error type.
func displayErrorMessage(err error, action, host string) {
	switch Classify(err) {
	case Timeout:
		showTimeoutError(action)
	case DNS:
		showDNSError(action, host)
	case ConnectionRefused:
		showConnectionRefusedError(action, host)
	case TLS:
		showSSLError(action)
	case Server:
		showServerError(action)
	case Unauthorized:
		pterm.Warning.Printf("Your session is no longer valid while %s.\n", action)
		pterm.Println("Sign in again with: farmacia login")
		pterm.Println()
	case Conflict, Rejected:
		pterm.Error.Printf("Request rejected while %s: %s\n", action, serverMessage(err))
		pterm.Println()
	default:
		showGenericError(action, host, logging.Mask(err.Error()))
	}
}

func serverMessage(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return http.StatusText(backend.StatusCode(err))
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// showTimeoutError displays a user-friendly timeout error message.
func showTimeoutError(action string) {
	pterm.Printf("⏱️  Connection timeout while %s\n", action)
	pterm.Println()
	pterm.Println("The store took too long to respond (limit: 30s). This could mean:")
	pterm.Println("  • Slow internet connection")
	pterm.Println("  • The server is waking up or under heavy load")
	pterm.Println()
	pterm.Println("Please try again in a few moments.")
	pterm.Println()
}

// showDNSError displays a user-friendly DNS error message.
func showDNSError(action, host string) {
	pterm.Printf("🌐 Cannot resolve server address while %s\n", action)
	pterm.Println()
	pterm.Printf("Unable to look up %s. Please check:\n", host)
	pterm.Println("  • Your internet connection is working")
	pterm.Println("  • DNS settings are correct")
	pterm.Println()
}

// showConnectionRefusedError displays a user-friendly connection refused error message.
func showConnectionRefusedError(action, host string) {
	pterm.Printf("🚫 Connection refused while %s\n", action)
	pterm.Println()
	pterm.Printf("%s is not accepting connections. This could mean:\n", host)
	pterm.Println("  • The local development server is not running (FARMACIA_ENV=development)")
	pterm.Println("  • A firewall is blocking the connection")
	pterm.Println()
}

// showSSLError displays a user-friendly SSL/TLS error message.
func showSSLError(action string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", action)
	pterm.Println()
	pterm.Println("Cannot establish a secure HTTPS connection. Try:")
	pterm.Println("  • Check your system date and time")
	pterm.Println("  • Verify network proxy settings")
	pterm.Println()
}

// showServerError displays a user-friendly server error message.
func showServerError(action string) {
	pterm.Printf("⚠️  Server error while %s\n", action)
	pterm.Println()
	pterm.Println("The store's server encountered an internal error.")
	pterm.Println("This is not a problem with your setup. Please try again in a few minutes.")
	pterm.Println()
}

// showGenericError displays a generic error message for unrecognized errors.
func showGenericError(action, host, details string) {
	pterm.Printf("❌ Cannot reach the store while %s\n", action)
	pterm.Println()
	pterm.Println("Please check:")
	pterm.Println("  • Your internet connection")
	pterm.Printf("  • Whether %s is accessible from your network\n", host)
	pterm.Println()

	if details != "" {
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", details)
		pterm.Println()
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
