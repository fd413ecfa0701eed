// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClearPreviousLines(t *testing.T) {
	var buf bytes.Buffer
	ClearPreviousLines(&buf, 100, 80)

	// two wrapped lines plus the line after Enter
	require.Equal(t, 3, strings.Count(buf.String(), "\x1b[2K"))
	require.Equal(t, 2, strings.Count(buf.String(), "\x1b[1A"))
}

func TestPrompterLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  ana@example.com \nnext\n"), &out)

	got, err := p.Line("Email: ")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", got)
	require.Equal(t, "Email: ", out.String())

	got, err = p.Line("Again: ")
	require.NoError(t, err)
	require.Equal(t, "next", got)

	_, err = p.Line("Nothing: ")
	require.Error(t, err)
}
