// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"farmacia/cli/internal/backend"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"401", &backend.StatusError{StatusCode: http.StatusUnauthorized}, Unauthorized},
		{"409", fmt.Errorf("register: %w", &backend.StatusError{StatusCode: http.StatusConflict}), Conflict},
		{"400", &backend.StatusError{StatusCode: http.StatusBadRequest}, Rejected},
		{"503", &backend.StatusError{StatusCode: http.StatusServiceUnavailable}, Server},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "example.invalid"}, DNS},
		{"refused", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, ConnectionRefused},
		{"tls", errors.New("tls: failed to verify certificate: x509: certificate has expired"), TLS},
		{"other", errors.New("something odd"), Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	require.Equal(t, "localhost:3001", ExtractHostFromURL("http://localhost:3001"))
	require.Equal(t, "server", ExtractHostFromURL("::not a url"))
}

func TestFormatNetworkErrorWraps(t *testing.T) {
	require.NoError(t, FormatNetworkError(nil, "signing in", "localhost"))

	root := errors.New("something odd")
	err := FormatNetworkError(root, "signing in", "localhost")
	require.ErrorIs(t, err, root)
	require.Contains(t, err.Error(), "signing in")
}
