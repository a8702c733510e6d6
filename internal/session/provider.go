// Package session resolves the current browser session against the hosted
// identity provider.
//
// The Provider interface is injected wherever identity is needed so tests
// can substitute a double; nothing in this package holds process-wide state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wareroom/stockview/internal/metrics"
)

// ErrUnauthenticated is returned when no valid session exists for the
// presented token. Consuming flows must stop, notify, and send the user to
// the login surface; they must not fetch data.
var ErrUnauthenticated = errors.New("no valid session")

// Session is the authenticated identity for the current request.
type Session struct {
	UserID string
	Email  string

	// AdminID is the scoping key for backend collections. Employee
	// accounts carry it in user metadata; administrator accounts are
	// scoped by their own user ID.
	AdminID string
}

// Provider supplies the session for an access token.
type Provider interface {
	Current(ctx context.Context, token string) (*Session, error)
}

// HTTPProvider resolves sessions against a hosted auth endpoint
// (GET {base}/auth/v1/user with a bearer token and project API key).
type HTTPProvider struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPProvider creates a provider for the given auth base URL.
func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Current implements Provider.
func (p *HTTPProvider) Current(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		metrics.SessionLookups.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", p.apiKey)

	resp, err := p.http.Do(req)
	if err != nil {
		metrics.SessionLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.SessionLookups.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		metrics.SessionLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("session lookup: unexpected status %d", resp.StatusCode)
	}

	var user struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Metadata struct {
			AdminID string `json:"adminId"`
		} `json:"user_metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		metrics.SessionLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("session lookup: decode response: %w", err)
	}
	if user.ID == "" {
		metrics.SessionLookups.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	}

	adminID := user.Metadata.AdminID
	if adminID == "" {
		adminID = user.ID
	}
	metrics.SessionLookups.WithLabelValues("ok").Inc()
	return &Session{UserID: user.ID, Email: user.Email, AdminID: adminID}, nil
}
