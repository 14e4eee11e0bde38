package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookMailer posts messages as JSON to a configured webhook endpoint.
type WebhookMailer struct {
	url    string
	client *http.Client
}

func NewWebhookMailer(url string) *WebhookMailer {
	return &WebhookMailer{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (m *WebhookMailer) SendMessage(ctx context.Context, recipient, subject, body string) error {
	msg := map[string]string{
		"recipient": recipient,
		"subject":   subject,
		"body":      body,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("notify webhook error: status=%d", resp.StatusCode)
	}
	return nil
}
