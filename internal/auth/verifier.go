// Package auth verifies Google ID tokens, maps directory groups to
// participant grants and issues portal session tokens.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrTokenRequired    = errors.New("email and id_token are required")
	ErrEmailMismatch    = errors.New("token email does not match requested email")
	ErrEmailNotVerified = errors.New("token email is not verified")
	ErrAudienceMismatch = errors.New("token was issued to another client")
)

// TokenInfo is the subset of the tokeninfo response the portal relies on.
type TokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	HostedDomain  string `json:"hd"`
	Name          string `json:"name"`
	Audience      string `json:"aud"`
}

// TokenVerifier checks ID tokens against the tokeninfo endpoint.
type TokenVerifier struct {
	endpoint string
	audience string
	client   *http.Client
}

// NewTokenVerifier returns a verifier calling endpoint through a traced HTTP client.
// A non-empty audience restricts tokens to that OAuth client ID.
func NewTokenVerifier(endpoint string, timeout time.Duration, audience string) *TokenVerifier {
	return &TokenVerifier{
		endpoint: endpoint,
		audience: strings.TrimSpace(audience),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Verify resolves idToken and requires the token to belong to email.
func (v *TokenVerifier) Verify(ctx context.Context, email, idToken string) (*TokenInfo, error) {
	email = strings.TrimSpace(email)
	idToken = strings.TrimSpace(idToken)
	if email == "" || idToken == "" {
		return nil, ErrTokenRequired
	}

	u, err := url.Parse(v.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse tokeninfo url: %w", err)
	}
	q := u.Query()
	q.Set("id_token", idToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tokeninfo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tokeninfo status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode tokeninfo: %w", err)
	}
	if !strings.EqualFold(info.Email, email) {
		return nil, ErrEmailMismatch
	}
	if strings.EqualFold(info.EmailVerified, "false") {
		return nil, ErrEmailNotVerified
	}
	if v.audience != "" && info.Audience != v.audience {
		return nil, ErrAudienceMismatch
	}
	return &info, nil
}
