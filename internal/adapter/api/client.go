// Package api is the gateway to the remote CycleSync API: a pure transport
// layer translating logical operations into JSON-over-HTTP calls. It never
// touches the session manager or the session store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cyclesync/cyclesync-client/internal/domain"
	"github.com/cyclesync/cyclesync-client/pkg/ctxutil"
)

const defaultTimeout = 10 * time.Second

// genericDetail is the fallback when a failure body carries no detail field.
const genericDetail = "request failed"

// malformedDetail is used when a response body is not valid JSON.
const malformedDetail = "malformed response"

// Client performs requests against the CycleSync API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a client for the given base URL. A non-positive timeout
// falls back to 10s.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "api"),
	}
}

// Login exchanges credentials for a session payload. No authorization header
// is sent.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &domain.Session{User: out.User, Tokens: out.Tokens}, nil
}

// Register creates an account and returns the same session payload as Login.
func (c *Client) Register(ctx context.Context, email, password string) (*domain.Session, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", credentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &domain.Session{User: out.User, Tokens: out.Tokens}, nil
}

// Predictions fetches the cycle forecast for the bearer of access.
func (c *Client) Predictions(ctx context.Context, access string) (*domain.Prediction, error) {
	var out predictionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/predictions", access, nil, &out); err != nil {
		return nil, err
	}
	return &out.Prediction, nil
}

// LogCycle submits a cycle entry. The acknowledgement body is
// implementation-defined and is not parsed.
func (c *Client) LogCycle(ctx context.Context, access string, entry domain.CycleEntry) error {
	return c.do(ctx, http.MethodPost, "/api/cycles", access, entry, nil)
}

// Subscribe starts a checkout for the given price identifier and returns the
// checkout URL, which may be empty.
func (c *Client) Subscribe(ctx context.Context, access, priceID string) (string, error) {
	var out subscribeResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments/subscribe", access, subscribeRequest{PriceID: priceID}, &out); err != nil {
		return "", err
	}
	return out.CheckoutURL, nil
}

// do executes one request. A non-empty access credential is attached as a
// bearer authorization header. 2xx bodies are decoded into out when out is
// non-nil; anything else becomes *Error with the body's detail text. A body
// that is not valid JSON, on success or failure, becomes *Error with
// "malformed response" instead of a decode error.
func (c *Client) do(ctx context.Context, method, path, access string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	requestID := ctxutil.RequestIDFromCtx(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	req.Header.Set("X-Request-Id", requestID)

	c.log.DebugContext(ctx, "api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "api request failed",
			slog.String("path", path), slog.String("error", err.Error()))
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := genericDetail
		var errBody errorResponse
		if jsonErr := json.Unmarshal(respBody, &errBody); jsonErr != nil {
			detail = malformedDetail
		} else if errBody.Detail != "" {
			detail = errBody.Detail
		}
		c.log.WarnContext(ctx, "api error response",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("detail", detail),
		)
		return &Error{Status: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &Error{Status: resp.StatusCode, Detail: malformedDetail}
		}
	}
	return nil
}
