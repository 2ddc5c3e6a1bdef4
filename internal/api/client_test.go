// ABOUTME: Tests for the HTTP adapter: envelope handling, bearer auth,
// ABOUTME: and hard/soft classification of 401 responses

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// staticToken is a TokenSource returning a fixed token.
type staticToken string

func (s staticToken) Token() string { return string(s) }

// writeEnvelope writes a controller-style response envelope.
func writeEnvelope(w http.ResponseWriter, status int, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]any{"success": success, "message": message}
	if data != nil {
		payload["data"] = data
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, http.StatusOK, true, map[string]any{"id": 1, "username": "admin"}, "")
	}))
	defer server.Close()

	client := New(server.URL, WithTokenSource(staticToken("tok-abc")))
	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me() error = %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-abc")
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, map[string]any{"enabled": true}, "")
	}))
	defer server.Close()

	client := New(server.URL)
	if _, err := client.RegistrationStatus(context.Background()); err != nil {
		t.Fatalf("RegistrationStatus() error = %v", err)
	}

	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClient_UnwrapsEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, map[string]any{
			"id": 7, "username": "carol", "isAdmin": true,
		}, "")
	}))
	defer server.Close()

	client := New(server.URL)
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}

	if user.ID != 7 || user.Username != "carol" || !user.IsAdmin {
		t.Errorf("Me() = %+v, want id=7 username=carol isAdmin=true", user)
	}
}

func TestClient_ApplicationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, nil, "username already taken")
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Register(context.Background(), Credentials{Username: "bob", Password: "pw"})
	if err == nil {
		t.Fatal("Register() should have returned an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message != "username already taken" {
		t.Errorf("message = %q, want server message", apiErr.Message)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so requests fail at the dial

	cleared := false
	client := New(server.URL, WithAuthFailureHandler(func(string) { cleared = true }))

	_, err := client.ListUsers(context.Background())
	if err == nil {
		t.Fatal("ListUsers() should have returned an error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("network failure should not be an *APIError, got %v", apiErr)
	}
	if cleared {
		t.Error("network failure must not trigger the auth failure handler")
	}
}

func TestClient_HardAuthFailure_AuthPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, nil, "")
	}))
	defer server.Close()

	cleared := false
	client := New(server.URL, WithAuthFailureHandler(func(string) { cleared = true }))

	if _, err := client.Me(context.Background()); err == nil {
		t.Fatal("Me() should have returned an error")
	}
	if !cleared {
		t.Error("401 on an auth route must trigger the auth failure handler")
	}
}

func TestClient_HardAuthFailure_TokenMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, nil, "Token has expired")
	}))
	defer server.Close()

	cleared := false
	client := New(server.URL, WithAuthFailureHandler(func(string) { cleared = true }))

	if _, err := client.ListUsers(context.Background()); err == nil {
		t.Fatal("ListUsers() should have returned an error")
	}
	if !cleared {
		t.Error("401 with a token message must trigger the auth failure handler")
	}
}

func TestClient_SoftAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, nil, "admin access required")
	}))
	defer server.Close()

	cleared := false
	client := New(server.URL, WithAuthFailureHandler(func(string) { cleared = true }))

	_, err := client.ListUsers(context.Background())
	if err == nil {
		t.Fatal("ListUsers() should still return an error on a soft 401")
	}
	if cleared {
		t.Error("soft 401 must not trigger the auth failure handler")
	}
}

func TestIsHardAuthFailure(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		message string
		want    bool
	}{
		{"auth route", "/auth/me", "", true},
		{"token message", "/users", "invalid token", true},
		{"unauthorized message", "/proxies", "Unauthorized", true},
		{"not authenticated message", "/clients", "user Not Authenticated", true},
		{"permission denial", "/users", "admin access required", false},
		{"empty message non-auth path", "/users", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isHardAuthFailure(tt.path, tt.message); got != tt.want {
				t.Errorf("isHardAuthFailure(%q, %q) = %v, want %v", tt.path, tt.message, got, tt.want)
			}
		})
	}
}
