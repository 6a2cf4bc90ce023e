// Package client implements the registration form's verification widget
// contract for Go callers: request a code, submit the code the user
// received, and expose a verified latch the enclosing flow can gate on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

var (
	// ErrAlreadyVerified is returned once the email has been verified;
	// the widget is terminal and further triggers are disabled.
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrRequestInFlight is returned when a call is attempted while a
	// previous one has not finished.
	ErrRequestInFlight = errors.New("verification request already in flight")
)

// APIError carries a server-reported failure. Message is the server's
// error string verbatim, suitable for showing to the user unmodified.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// VerifyClient drives the email verification endpoint for one
// registration form. Safe for concurrent use; overlapping calls are
// rejected rather than queued, mirroring the widget's disabled state
// while a request is pending.
type VerifyClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	verified bool
	inFlight bool
}

// Option configures a VerifyClient
type Option func(*VerifyClient)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *VerifyClient) {
		c.httpClient = hc
	}
}

// NewVerifyClient creates a client for the verification endpoint at
// baseURL (e.g. "https://api.startupvista.in/api").
func NewVerifyClient(baseURL string, opts ...Option) *VerifyClient {
	c := &VerifyClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Verified reports whether the email has been verified.
func (c *VerifyClient) Verified() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verified
}

// RequestCode asks the server to issue and email a fresh code.
func (c *VerifyClient) RequestCode(ctx context.Context, email string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.post(ctx, map[string]string{
		"email":  email,
		"action": "generate",
	})
}

// SubmitCode submits the code the user typed in. On success the client
// latches verified and rejects further calls.
func (c *VerifyClient) SubmitCode(ctx context.Context, email, code string) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if err := c.post(ctx, map[string]string{
		"email":  email,
		"action": "verify",
		"code":   code,
	}); err != nil {
		return err
	}

	c.mu.Lock()
	c.verified = true
	c.mu.Unlock()
	return nil
}

func (c *VerifyClient) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verified {
		return ErrAlreadyVerified
	}
	if c.inFlight {
		return ErrRequestInFlight
	}
	c.inFlight = true
	return nil
}

func (c *VerifyClient) end() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

func (c *VerifyClient) post(ctx context.Context, body map[string]string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email-verification", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !decoded.Success {
		message := decoded.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: message}
	}

	return nil
}
