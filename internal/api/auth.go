package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quill/internal/domain"
	"quill/internal/domain/models/workspace"

	"github.com/golang-jwt/jwt/v5"
)

// AuthResponse is the token grant response.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token via the password grant and
// installs the token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var auth AuthResponse
	if err := c.do(req, &auth); err != nil {
		return nil, err
	}

	c.SetToken(auth.AccessToken)
	c.logger.Info("logged in", "username", username)
	return &auth, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*workspace.User, error) {
	var user workspace.User
	if err := c.doJSON(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckToken inspects the held token's registered claims without verifying
// the signature (verification is the server's job; the client has no key
// material). An absent or expired token is reported as ErrSessionExpired so
// the caller can redirect to login before issuing doomed requests.
func (c *Client) CheckToken() error {
	if c.token == "" {
		return domain.ErrSessionExpired
	}

	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(c.token, &claims); err != nil {
		// Opaque (non-JWT) tokens cannot be inspected; let the server decide.
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		c.logger.Debug("bearer token expired", "expired_at", claims.ExpiresAt.Time)
		return domain.ErrSessionExpired
	}
	return nil
}
