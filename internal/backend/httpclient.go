// Copyright (c) 2025 Farmacia
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmacia/cli/internal/logging"
	"farmacia/cli/internal/manifest"
)

// RequestTimeout bounds every request, connection and body included.
const RequestTimeout = 30 * time.Second

// HTTP implements API, Accounts, Catalog and Cart over the storefront's REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:3001")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client with the fixed request timeout
	client *http.Client
	// creds supplies the bearer token and is purged on 401
	creds CredentialSource
	log   *zap.Logger

	subMu  sync.Mutex
	subs   map[uint64]func(UnauthorizedEvent)
	nextID uint64
}

var (
	_ API      = (*HTTP)(nil)
	_ Accounts = (*HTTP)(nil)
	_ Catalog  = (*HTTP)(nil)
	_ Cart     = (*HTTP)(nil)
)

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints manifest.HTTPEndpoints, creds CredentialSource, log *zap.Logger) *HTTP {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: RequestTimeout},
		creds:     creds,
		log:       log,
		subs:      make(map[uint64]func(UnauthorizedEvent)),
	}
}

// OnUnauthorized registers fn to be called after a 401 purged the credential.
// Callbacks run synchronously on the goroutine that issued the request.
func (h *HTTP) OnUnauthorized(fn func(UnauthorizedEvent)) func() {
	h.subMu.Lock()
	defer h.subMu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		delete(h.subs, id)
	}
}

// setStandardHeaders sets the headers every request carries.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "farmacia-cli")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// authorize attaches the stored bearer token. A missing or unreadable token
// leaves the request unauthenticated.
func (h *HTTP) authorize(req *http.Request) {
	if h.creds == nil {
		return
	}
	token, ok, err := h.creds.Token()
	if err != nil {
		h.log.Warn("read token for request", zap.String("path", req.URL.Path), zap.Error(err))
		return
	}
	if ok {
		req.Header.Set("Authorization", bearer(token))
	}
}

// do sends a JSON request and decodes a JSON response into out (when non-nil).
// Transport errors are returned as-is; non-2xx responses become *StatusError.
func (h *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return err
	}
	h.setStandardHeaders(req)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	h.authorize(req)

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	// The purge must not depend on the body arriving intact.
	if resp.StatusCode == http.StatusUnauthorized {
		h.revoke(method, path)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	data, err := io.ReadAll(resp.Body)
	if err != nil && ok {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	h.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-ID")))

	if !ok {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    logging.Mask(serverMessage(data)),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		h.log.Debug("undecodable response", zap.String("path", path), zap.String("body", logging.Mask(string(data))))
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// revoke purges the stored credential and notifies subscribers.
func (h *HTTP) revoke(method, path string) {
	ev := UnauthorizedEvent{Method: method, Path: path, At: time.Now()}
	if h.creds != nil {
		if err := h.creds.Purge(); err != nil {
			ev.PurgeErr = err
			h.log.Warn("purge credential after 401", zap.String("path", path), zap.Error(err))
		}
	}
	h.log.Info("credential rejected by server", zap.String("method", method), zap.String("path", path))

	h.subMu.Lock()
	fns := make([]func(UnauthorizedEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
