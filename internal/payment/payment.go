// AngelaMos | 2026
// payment.go

package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/estately/internal/config"
)

// Intent is the handle returned by the payment provider. The client secret
// is only ever returned to the buyer who owns the offer being paid for.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Provider interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error)
}

// Client talks to a Stripe-compatible payments API over its form-encoded
// REST surface.
type Client struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		apiURL:    strings.TrimRight(cfg.APIURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) CreateIntent(
	ctx context.Context,
	amount int64,
	currency string,
) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.apiURL+"/payment_intents",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("create intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create intent: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("create intent: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf(
			"create intent: provider returned %d: %s",
			resp.StatusCode,
			providerErrorMessage(body),
		)
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("create intent: decode response: %w", err)
	}
	if intent.ID == "" || intent.ClientSecret == "" {
		return nil, fmt.Errorf("create intent: provider returned incomplete intent")
	}

	return &intent, nil
}

func providerErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
