// Package platform talks to the remote commerce API that owns users,
// the product catalog and server-side orders.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-server/internal/observability"
)

var (
	// ErrNetworkFailure matches every failed remote call.
	ErrNetworkFailure = errors.New("platform request failed")
	ErrNotFound       = errors.New("platform resource not found")
)

// Error describes a failed remote call. Message is what the user should see.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("platform returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform unreachable: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	if target == ErrNetworkFailure {
		return true
	}
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is a thin JSON client without retries. Each call either returns the
// decoded body or an *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *observability.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Register creates a platform account. ref is the referral code from the
// signup link and wins over the one typed into the form.
func (c *Client) Register(ctx context.Context, req RegisterRequest, ref string) (RegisteredUser, error) {
	path := "/auth/register"
	if ref != "" {
		path += "?ref=" + url.QueryEscape(ref)
	}
	var out RegisteredUser
	err := c.do(ctx, http.MethodPost, path, req, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", req, &out)
	return out, err
}

func (c *Client) ListProducts(ctx context.Context) ([]ProductOut, error) {
	var out []ProductOut
	if err := c.do(ctx, http.MethodGet, "/admin/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (ProductOut, error) {
	var out ProductOut
	err := c.do(ctx, http.MethodGet, "/user-store/products/"+url.PathEscape(productID), nil, &out)
	return out, err
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductOut, error) {
	var out ProductOut
	err := c.do(ctx, http.MethodPost, "/admin/products", req, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	var raw struct {
		OrderID   json.RawMessage `json:"order_id"`
		BillingID json.RawMessage `json:"billing_id"`
		Message   string          `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders/create", req, &raw); err != nil {
		return CreateOrderResponse{}, err
	}
	return CreateOrderResponse{
		OrderID:   rawID(raw.OrderID),
		BillingID: rawID(raw.BillingID),
		Message:   raw.Message,
	}, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]RemoteOrder, error) {
	var out []RemoteOrder
	if err := c.do(ctx, http.MethodGet, "/orders/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "platform_method", Value: method},
		observability.Field{Key: "platform_path", Value: path},
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode platform request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build platform request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "platform request failed", err)
		return &Error{Message: "Unable to reach the store platform. Please try again.", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(ctx, "failed to read platform response", err)
		return &Error{StatusCode: resp.StatusCode, Message: "Unexpected response from the store platform.", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := &Error{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, respBody)}
		c.logger.Error(observability.WithFields(ctx,
			observability.Field{Key: "status_code", Value: resp.StatusCode},
		), "platform returned an error", perr)
		return perr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		c.logger.Error(ctx, "failed to decode platform response", err)
		return &Error{StatusCode: resp.StatusCode, Message: "Unexpected response from the store platform.", Err: err}
	}
	return nil
}

// errorMessage pulls a human message out of an error body. FastAPI puts it in
// "detail", which may also be a list of validation problems.
func errorMessage(status int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			raw, ok := payload[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
			var items []struct {
				Msg string `json:"msg"`
			}
			if err := json.Unmarshal(raw, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
				return items[0].Msg
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}
