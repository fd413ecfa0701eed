// Package main is the entry point for the Farmacia CLI application.
// It drives a pharmacy storefront account from the terminal: session
// login/logout, catalog browsing and the shopping cart.
package main

import (
	"farmacia/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
