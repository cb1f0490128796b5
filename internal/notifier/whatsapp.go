package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WhatsAppClient posts messages to a company's configured WhatsApp gateway.
// The timeout is fixed so a slow provider cannot hang a delivery worker.
type WhatsAppClient struct {
	client *http.Client
}

func NewWhatsAppClient() *WhatsAppClient {
	return &WhatsAppClient{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (w *WhatsAppClient) Send(creds WhatsappCreds, phone string, message string) error {
	payload := map[string]interface{}{
		"instance": creds.Instance,
		"phone":    phone,
		"message":  message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, creds.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Token)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned status %d", resp.StatusCode)
	}

	return nil
}
