// Package health queries the companion server's liveness and status
// endpoints. Queries never touch supervisor state.
package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

// Probe issues read-only requests against the companion server.
type Probe struct {
	client  *http.Client
	baseURL string
}

// New creates a probe for the server at baseURL (e.g. "http://localhost:4243").
// The client has no timeout; a request runs until the transport gives up.
func New(baseURL string) *Probe {
	return &Probe{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NewDefault creates a probe for the fixed companion server address.
func NewDefault() *Probe {
	return New(models.ServerURL())
}

// BaseURL returns the server URL the probe targets.
func (p *Probe) BaseURL() string {
	return p.baseURL
}

// CheckHealth reports whether the health endpoint answers with a 2xx status.
// A request that cannot be completed (refused, DNS, timeout) is "not
// healthy", not an error.
func (p *Probe) CheckHealth(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+models.HealthPath, nil)
	if err != nil {
		return false, fmt.Errorf("health request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// Status returns the raw body of the status endpoint. Unlike CheckHealth, a
// failed request is an error.
func (p *Probe) Status(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+models.StatusPath, nil)
	if err != nil {
		return "", fmt.Errorf("status request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("status request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read status body: %w", err)
	}
	return string(body), nil
}
