// Package client talks to the auth service and keeps the resulting
// session in the local store, mirroring what the web frontend does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"netflix-clone-backend/localstore"
)

// APIError is a non-success answer from the auth service. Message is
// the server's user-facing message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auth api: %s (status %d)", e.Message, e.Status)
}

type AuthResponse struct {
	Success bool                   `json:"success"`
	Token   string                 `json:"token"`
	User    *localstore.StoredUser `json:"user"`
	Message string                 `json:"message"`
}

type SignupResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    *localstore.StoredUser `json:"data"`
}

type CheckUserResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Message string `json:"message"`
}

type VerifyTokenResponse struct {
	Success bool                   `json:"success"`
	Valid   bool                   `json:"valid"`
	User    *localstore.StoredUser `json:"user"`
	Token   string                 `json:"token"`
	Message string                 `json:"message"`
}

// AuthAPI is the HTTP client for the auth endpoints. The cookie jar
// keeps the http-only session cookie between calls, like a browser.
type AuthAPI struct {
	baseURL string
	http    *http.Client
}

// NewAuthAPI creates a client for the service at baseURL, e.g.
// "http://localhost:4000/api/v1".
func NewAuthAPI(baseURL string) *AuthAPI {
	jar, _ := cookiejar.New(nil)
	return &AuthAPI{
		baseURL: baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
	}
}

func (c *AuthAPI) post(ctx context.Context, path string, body any, bearer string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request to auth api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var fail struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&fail)
		if fail.Message == "" {
			fail.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: fail.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding auth api response: %w", err)
	}
	return nil
}

func (c *AuthAPI) Signup(ctx context.Context, name, email, password, role string) (*SignupResponse, error) {
	var out SignupResponse
	err := c.post(ctx, "/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthAPI) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthAPI) CheckUser(ctx context.Context, email string) (*CheckUserResponse, error) {
	var out CheckUserResponse
	err := c.post(ctx, "/check-user", map[string]string{"email": email}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken checks the current session. A non-empty token travels as
// a bearer header; the jar's cookie, when present, wins server-side.
func (c *AuthAPI) VerifyToken(ctx context.Context, token string) (*VerifyTokenResponse, error) {
	var out VerifyTokenResponse
	err := c.post(ctx, "/verify-token", map[string]string{}, token, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthAPI) GoogleLogin(ctx context.Context, email, name, picture, googleID string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "/google-login", map[string]string{
		"email":    email,
		"name":     name,
		"picture":  picture,
		"googleId": googleID,
	}, "", &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
