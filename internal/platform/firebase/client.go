// Package firebase implements identity.Provider on top of the Firebase
// Authentication (Identity Toolkit) REST API, authenticated with the web API key.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/signup-api/internal/config"
	"github.com/phrazzld/signup-api/internal/identity"
	"github.com/phrazzld/signup-api/internal/redact"
)

const (
	// DefaultEndpoint is the production Identity Toolkit base URL.
	DefaultEndpoint = "https://identitytoolkit.googleapis.com/v1"

	maxResponseBytes = 1 << 20
)

// Client talks to the Identity Toolkit REST API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	appID      string
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithEndpoint overrides the Identity Toolkit base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// NewClient creates a Client for the project described by fb. When
// identityCfg.EmulatorHost is set, requests go to the local Auth emulator.
func NewClient(
	fb config.FirebaseConfig,
	identityCfg config.IdentityConfig,
	logger *slog.Logger,
	opts ...Option,
) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	timeout := identityCfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpointFor(identityCfg),
		apiKey:     fb.APIKey,
		appID:      fb.AppID,
		logger:     logger.With("component", "firebase_auth"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func endpointFor(identityCfg config.IdentityConfig) string {
	if identityCfg.EmulatorHost != "" {
		return "http://" + identityCfg.EmulatorHost + "/identitytoolkit.googleapis.com/v1"
	}
	return DefaultEndpoint
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signUpResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
}

// CreateUser implements identity.Provider. The call is bound to ctx, so a
// cancelled request aborts the outbound HTTP call.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*identity.UserIdentity, error) {
	payload, err := json.Marshal(signUpRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, &identity.ProviderError{
			Code:    identity.CodeInternalError,
			Message: "failed to encode sign-up request",
			Err:     err,
		}
	}

	var out signUpResponse
	if err := c.post(ctx, "accounts:signUp", payload, &out); err != nil {
		return nil, err
	}

	if out.LocalID == "" {
		return nil, identity.NewProviderError(identity.CodeInternalError, "sign-up response missing user id")
	}

	if out.Email == "" {
		out.Email = email
	}

	return &identity.UserIdentity{UID: out.LocalID, Email: out.Email}, nil
}

// post sends a JSON request to the given Identity Toolkit method and decodes
// a successful response into out. Every failure is a *identity.ProviderError.
func (c *Client) post(ctx context.Context, method string, payload []byte, out any) error {
	url := c.endpoint + "/" + method + "?key=" + c.apiKey

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &identity.ProviderError{
			Code:    identity.CodeInternalError,
			Message: "failed to build provider request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.appID != "" {
		req.Header.Set("X-Firebase-gmpid", c.appID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "identity provider request failed",
			"method", method,
			"error", redact.Error(err))

		message := "network request failed"
		if errors.Is(err, context.Canceled) {
			message = "request cancelled"
		} else if errors.Is(err, context.DeadlineExceeded) {
			message = "request timed out"
		}
		return &identity.ProviderError{
			Code:    identity.CodeNetworkRequestFailed,
			Message: message,
			Err:     err,
		}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug("failed to close provider response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &identity.ProviderError{
			Code:    identity.CodeNetworkRequestFailed,
			Message: "failed to read provider response",
			Err:     err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := parseErrorResponse(resp.StatusCode, body)
		c.logger.DebugContext(ctx, "identity provider rejected request",
			"method", method,
			"status_code", resp.StatusCode,
			"code", perr.Code)
		return perr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &identity.ProviderError{
			Code:    identity.CodeInternalError,
			Message: "malformed provider response",
			Err:     err,
		}
	}

	return nil
}

// errorEnvelope is the Google API error format returned by Identity Toolkit.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

func parseErrorResponse(status int, body []byte) *identity.ProviderError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error.Message == "" {
		return &identity.ProviderError{
			Code:    identity.CodeInternalError,
			Message: fmt.Sprintf("unexpected provider response (HTTP %d)", status),
			Err:     err,
		}
	}

	reasons := make([]string, 0, len(env.Error.Details))
	for _, d := range env.Error.Details {
		reasons = append(reasons, d.Reason)
	}

	return &identity.ProviderError{
		Code:    MapServerError(env.Error.Message, reasons...),
		Message: env.Error.Message,
	}
}
