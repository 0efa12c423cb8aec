package telegram

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
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/polkiloo/reelorders/internal/domain/model"
)

// Notifier delivers a new order alert to operators.
type Notifier interface {
	Notify(ctx context.Context, order model.Order) error
}

// APIError reports a non-successful Bot API response.
type APIError struct {
	StatusCode  int
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("telegram api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("telegram api error: status %d: %s", e.StatusCode, e.Description)
}

// HTTPClient implements Notifier via the Bot API sendMessage method.
type HTTPClient struct {
	baseURL    *url.URL
	token      string
	chatID     string
	httpClient *http.Client
	logger     *slog.Logger
	printer    *message.Printer
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewHTTPClient creates a Bot API client. The per-call deadline comes from the caller context.
func NewHTTPClient(baseURL, token, chatID string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse telegram url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("telegram url must be absolute")
	}
	if token == "" || chatID == "" {
		return nil, fmt.Errorf("telegram token and chat id are required")
	}
	return &HTTPClient{
		baseURL:    parsed,
		token:      token,
		chatID:     chatID,
		logger:     logger,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		printer:    message.NewPrinter(language.English),
	}, nil
}

// Notify sends one Markdown order summary to the configured chat.
func (c *HTTPClient) Notify(ctx context.Context, order model.Order) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      FormatOrderMessage(c.printer, order),
		ParseMode: "Markdown",
	})
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "bot"+c.token, "sendMessage")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", redact(err, c.token))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var data apiResponse
	_ = json.Unmarshal(body, &data)

	if resp.StatusCode != http.StatusOK || !data.OK {
		c.logger.Debug("telegram request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return &APIError{StatusCode: resp.StatusCode, Description: data.Description}
	}
	return nil
}

// FormatOrderMessage renders the operator alert for order.
func FormatOrderMessage(p *message.Printer, order model.Order) string {
	var b strings.Builder
	b.WriteString("🚀 *New Order Received!*\n")
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "🆔 *ID:* %s\n", order.ID)
	fmt.Fprintf(&b, "🛠 *Service:* %s\n", order.ServiceType)
	b.WriteString(p.Sprintf("📦 *Package:* %d\n", order.Quantity))
	fmt.Fprintf(&b, "💰 *Price:* ₹%d\n", order.Price)
	fmt.Fprintf(&b, "🔗 *Link:* %s\n", order.TargetURL)
	fmt.Fprintf(&b, "💳 *UTR:* %s\n", order.PaymentReference)
	b.WriteString("\nCheck admin panel to approve!")
	return b.String()
}

// redact strips the bot token from transport errors, which embed the request URL.
func redact(err error, token string) error {
	msg := err.Error()
	if token == "" || !strings.Contains(msg, token) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, token, "<token>"))
}

// Nop discards notifications when the bot is not configured.
type Nop struct{}

// Notify does nothing.
func (Nop) Notify(context.Context, model.Order) error { return nil }
