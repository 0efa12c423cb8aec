package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

const maxErrorBody = 4 << 10

// ErrOrderNotFound indicates the server does not know the order.
var ErrOrderNotFound = errors.New("order not found")

// StatusError carries a non-success response from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("reelorders api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("reelorders api: %d %s", e.StatusCode, e.Message)
}

// HTTPClient talks to the public order API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type orderPayload struct {
	ID               string    `json:"id"`
	ServiceType      string    `json:"service_type"`
	PackageID        string    `json:"package_id"`
	Quantity         int       `json:"quantity"`
	Price            int       `json:"price"`
	TargetURL        string    `json:"target_url"`
	PaymentReference string    `json:"payment_reference"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type submitRequest struct {
	ID               string `json:"id,omitempty"`
	ServiceType      string `json:"service_type"`
	PackageID        string `json:"package_id"`
	Quantity         int    `json:"quantity"`
	Price            int    `json:"price"`
	TargetURL        string `json:"target_url"`
	PaymentReference string `json:"payment_reference"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type statusPayload struct {
	Status string `json:"status"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// GetOrder fetches one order by id.
func (c *HTTPClient) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var payload orderPayload
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &payload); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	order := payload.toModel()
	return &order, nil
}

// SubmitOrder creates an order and returns the id assigned by the server.
// An empty in.ID lets the server generate one.
func (c *HTTPClient) SubmitOrder(ctx context.Context, in model.OrderInput) (string, error) {
	body := submitRequest{
		ID:               in.ID,
		ServiceType:      in.ServiceType,
		PackageID:        in.PackageID,
		Quantity:         in.Quantity,
		Price:            in.Price,
		TargetURL:        in.TargetURL,
		PaymentReference: in.PaymentReference,
	}
	var resp submitResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// History fetches the known orders among ids, newest first.
func (c *HTTPClient) History(ctx context.Context, ids []string) ([]model.Order, error) {
	if ids == nil {
		ids = []string{}
	}
	var payload []orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/orders/batch", map[string][]string{"ids": ids}, &payload); err != nil {
		return nil, err
	}
	orders := make([]model.Order, len(payload))
	for i, p := range payload {
		orders[i] = p.toModel()
	}
	return orders, nil
}

// ServerStatus reports whether the shop accepts orders.
func (c *HTTPClient) ServerStatus(ctx context.Context) (model.ServerStatus, error) {
	var payload statusPayload
	if err := c.do(ctx, http.MethodGet, "/api/settings/server-status", nil, &payload); err != nil {
		return "", err
	}
	return model.ServerStatus(payload.Status), nil
}

func (c *HTTPClient) do(ctx context.Context, method, route string, in, out any) error {
	// route carries escaped segments; keep them escaped exactly once on the wire.
	escaped := path.Join(c.baseURL.EscapedPath(), route)
	unescaped, err := url.PathUnescape(escaped)
	if err != nil {
		return fmt.Errorf("build request path: %w", err)
	}
	endpoint := *c.baseURL
	endpoint.Path = unescaped
	endpoint.RawPath = escaped

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr errorPayload
		_ = json.Unmarshal(raw, &apiErr)
		c.logger.Debug("api request failed",
			slog.String("method", method),
			slog.String("route", route),
			slog.Int("status", resp.StatusCode),
		)
		return &StatusError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (p orderPayload) toModel() model.Order {
	return model.Order{
		ID:               p.ID,
		ServiceType:      p.ServiceType,
		PackageID:        p.PackageID,
		Quantity:         p.Quantity,
		Price:            p.Price,
		TargetURL:        p.TargetURL,
		PaymentReference: p.PaymentReference,
		Status:           model.OrderStatus(p.Status),
		CreatedAt:        p.CreatedAt,
	}
}
