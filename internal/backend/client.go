// Package backend implements the HTTP client for the storefront backend:
// lesson catalog, search, authentication, and orders. Failures are
// normalized to typed application errors so callers can keep prior state on
// transport trouble and surface backend messages verbatim on rejection.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulkamani9/overtune/internal/catalog"
	apperrors "github.com/paulkamani9/overtune/internal/platform/errors"
	"github.com/paulkamani9/overtune/internal/session"
)

// ConnectErrorMessage is the user-facing text for transport-level failures.
const ConnectErrorMessage = "Unable to connect to server. Please try again."

const (
	loginFallbackMessage    = "Login failed. Please try again."
	registerFallbackMessage = "Registration failed. Please try again."
	orderFallbackMessage    = "Order failed. Please try again."
	genericFallbackMessage  = "Request failed. Please try again."

	maxResponseBytes = 4 << 20
)

// OrderLine is one lesson booking inside an order.
type OrderLine struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the order submission payload built from the cart.
type OrderRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Lessons []OrderLine `json:"lessons"`
}

// Order is a past order as returned by the order-history endpoint.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Lessons   []OrderLine `json:"lessons"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}

// Config configures the backend client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the storefront backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// New creates a backend client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tracer:     otel.Tracer("overtune/backend"),
	}, nil
}

// Lessons fetches the full catalog. The returned list replaces, never
// merges into, the caller's list.
func (c *Client) Lessons(ctx context.Context) ([]catalog.Lesson, error) {
	var envelope struct {
		Success bool             `json:"success"`
		Data    []catalog.Lesson `json:"data"`
		Message string           `json:"message"`
	}
	if err := c.call(ctx, http.MethodGet, "/lessons", "", nil, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, rejection(envelope.Message, genericFallbackMessage)
	}
	return envelope.Data, nil
}

// Search fetches the catalog subset matching a free-text query. The
// matching itself is the backend's responsibility. A blank query is not a
// valid search request; callers fall back to Lessons instead.
func (c *Client) Search(ctx context.Context, query string) ([]catalog.Lesson, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.E(apperrors.KindInvalidInput, "search query is required")
	}
	var envelope struct {
		Success bool             `json:"success"`
		Data    []catalog.Lesson `json:"data"`
		Message string           `json:"message"`
	}
	path := "/search?q=" + url.QueryEscape(query)
	if err := c.call(ctx, http.MethodGet, path, "", nil, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, rejection(envelope.Message, genericFallbackMessage)
	}
	return envelope.Data, nil
}

// Login exchanges credentials for a session token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (session.Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/auth/login", body, loginFallbackMessage)
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, input session.RegisterInput) (session.Credentials, error) {
	return c.authenticate(ctx, "/auth/register", input, registerFallbackMessage)
}

// Orders fetches the order history scoped to the session token.
func (c *Client) Orders(ctx context.Context, token string) ([]Order, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperrors.E(apperrors.KindUnauthorized, "session token is required")
	}
	var envelope struct {
		Success bool    `json:"success"`
		Data    []Order `json:"data"`
		Message string  `json:"message"`
	}
	if err := c.call(ctx, http.MethodGet, "/orders", token, nil, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, rejection(envelope.Message, genericFallbackMessage)
	}
	return envelope.Data, nil
}

// SubmitOrder places an order. The token is optional: when present the
// order is user-scoped, otherwise it is submitted anonymously.
func (c *Client) SubmitOrder(ctx context.Context, token string, order OrderRequest) error {
	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, "/orders", token, order, &envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return rejection(envelope.Message, orderFallbackMessage)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, path string, body any, fallback string) (session.Credentials, error) {
	var envelope struct {
		Success bool            `json:"success"`
		Token   string          `json:"token"`
		User    session.Profile `json:"user"`
		Message string          `json:"message"`
	}
	if err := c.call(ctx, http.MethodPost, path, "", body, &envelope); err != nil {
		return session.Credentials{}, err
	}
	if !envelope.Success {
		return session.Credentials{}, rejection(envelope.Message, fallback)
	}
	creds := session.Credentials{Token: envelope.Token, User: envelope.User}
	if !creds.Valid() {
		return session.Credentials{}, apperrors.E(apperrors.KindUnavailable, ConnectErrorMessage)
	}
	return creds, nil
}

// call performs one HTTP round trip and decodes the JSON envelope into
// target. Transport and parse failures come back as unavailable errors;
// non-2xx responses with a decodable envelope are left for the caller to
// turn into rejections via the success flag.
func (c *Client) call(ctx context.Context, method, path, token string, body, target any) error {
	ctx, span := c.tracer.Start(ctx, "backend"+routeName(path),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		))
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUnavailable, ConnectErrorMessage)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUnavailable, ConnectErrorMessage)
	}
	if err := json.Unmarshal(payload, target); err != nil {
		span.RecordError(err)
		return apperrors.E(apperrors.KindUnavailable, ConnectErrorMessage)
	}
	return nil
}

func rejection(message, fallback string) error {
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return apperrors.E(apperrors.KindRejected, message)
}

func routeName(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.ReplaceAll(path, "/", ".")
}
