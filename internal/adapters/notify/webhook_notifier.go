package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
)

// WebhookNotifier posts each notification as a JSON {title, body} pair to a
// configured URL (an ntfy topic, a phone-bridge, anything that accepts POST).
// The response body is discarded; the caller only ever fires and forgets.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

var _ domain.Notifier = (*WebhookNotifier)(nil)

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("webhook notifier: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook notifier: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook notifier: post: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the content is irrelevant.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook notifier: endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier stands in when no webhook URL is configured, so ring closures
// still leave a trace in development.
type LogNotifier struct{}

var _ domain.Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	log.Printf("[NOTIFY] %s: %s", notification.Title, notification.Body)
	return nil
}
