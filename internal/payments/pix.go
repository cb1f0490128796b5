package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// PixClient creates charges against the configured PIX provider. The
// provider confirms payment asynchronously through the webhook.
type PixClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewPixClientFromEnv() *PixClient {
	return &PixClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    os.Getenv("PIX_API_URL"),
		apiKey:     os.Getenv("PIX_API_KEY"),
	}
}

type Charge struct {
	TxID   string `json:"txid"`
	QRCode string `json:"qr_code"`
}

type chargeRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
}

func (c *PixClient) CreateCharge(amountCents int64, description string) (*Charge, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("PIX_API_URL is not configured")
	}

	body, err := json.Marshal(chargeRequest{
		AmountCents: amountCents,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal charge request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v2/cob", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create pix charge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("pix provider returned status %d: %s", resp.StatusCode, string(payload))
	}

	var charge Charge
	err = json.NewDecoder(resp.Body).Decode(&charge)
	if err != nil {
		return nil, fmt.Errorf("failed to decode charge response: %w", err)
	}

	return &charge, nil
}

// WebhookEvent is the provider's payment confirmation callback payload.
type WebhookEvent struct {
	TxID   string `json:"txid"`
	Status string `json:"status"`
}

// VerifyWebhookSecret compares the shared secret the provider sends on each
// callback. An empty configured secret disables verification (dev only).
func VerifyWebhookSecret(r *http.Request) bool {
	secret := os.Getenv("PIX_WEBHOOK_SECRET")
	if secret == "" {
		return true
	}
	return r.Header.Get("X-Webhook-Secret") == secret
}
