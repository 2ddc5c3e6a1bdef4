// ABOUTME: Auth endpoints: login, register, registration status, current user
// ABOUTME: Login returns the bearer token used for all later requests

package api

import (
	"context"
	"net/http"
)

// Credentials is a username/password pair for login and registration.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the token and user identity returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterStatus reports whether self-service registration is open.
type RegisterStatus struct {
	Enabled bool `json:"enabled"`
}

// Login authenticates and returns a bearer token plus the user identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. Only allowed while registration is open.
func (c *Client) Register(ctx context.Context, creds Credentials) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RegistrationStatus reports whether the controller accepts registrations.
func (c *Client) RegistrationStatus(ctx context.Context) (*RegisterStatus, error) {
	var status RegisterStatus
	if err := c.do(ctx, http.MethodGet, "/auth/register/status", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Me returns the identity of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
