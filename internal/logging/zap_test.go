// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	log, err := New("")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))

	log, err = New("debug")
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = New("chatty")
	require.Error(t, err)
}

func TestPresentErrorMasks(t *testing.T) {
	require.Empty(t, PresentError("login", nil))
	got := PresentError("login", errors.New(`bad body {"password":"hunter22"}`))
	require.Equal(t, `login: bad body {"password":"***"}`, got)
}
