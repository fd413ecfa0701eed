// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	apperrors "farmacia/cli/internal/errors"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner starts a simple inline spinner animation on a single line.
// It displays rotating animation frames followed by the provided text, updating
// the same line in the terminal, with the cursor hidden while it runs.
//
// The returned function stops the spinner, clears its line and restores the cursor.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	cursor.Hide()
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				// Clear the spinner line completely, then return
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

// spin runs fn with a spinner showing text.
func spin(w io.Writer, text string, fn func() error) error {
	stop := startInlineSpinner(w, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	return fn()
}

// errNeedsYes is returned when a destructive command cannot ask for confirmation.
var errNeedsYes = apperrors.New(apperrors.ValidationFailed, "cannot ask for confirmation without a terminal, pass --yes")

// confirm asks question on the terminal unless yes is set. Without a terminal
// on in it fails instead of assuming an answer.
func confirm(in *os.File, yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	if !term.IsTerminal(int(in.Fd())) {
		return false, errNeedsYes
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
}
