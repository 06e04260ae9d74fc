package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coolify-tools/docker-status-monitor/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

const maxConcurrentDeliveries = 4

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier delivers transition events to the configured endpoint as
// JSON POSTs. Deliveries are fire-and-forget: a failed delivery is logged
// and the event dropped, never retried.
type WebhookNotifier struct {
	logger zerolog.Logger
	cli    httpDoer
	url    string
}

func NewWebhookNotifier(cli httpDoer, url string, logger zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		logger: logger,
		cli:    cli,
		url:    url,
	}
}

// Notify performs a single delivery attempt for one event. A non-2xx
// response is returned as a *StatusError.
func (n *WebhookNotifier) Notify(ctx context.Context, event domain.TransitionEvent) error {
	body, err := json.Marshal(toPayload(event))
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.cli.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewStatusError(resp.StatusCode, strings.TrimSpace(string(preview)))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// NotifyAll delivers the cycle's events concurrently and waits for every
// delivery to settle. One slow or failed delivery never blocks or loses
// another; each failure is logged on its own.
func (n *WebhookNotifier) NotifyAll(ctx context.Context, events []domain.TransitionEvent) {
	p := pool.New().WithMaxGoroutines(maxConcurrentDeliveries)
	for _, event := range events {
		p.Go(func() {
			if err := n.Notify(ctx, event); err != nil {
				n.logger.Error().
					Err(err).
					Str("container_id", event.Container.ShortId()).
					Str("name", event.Container.Name).
					Str("previous_status", string(event.PreviousStatus)).
					Str("current_status", string(event.CurrentStatus)).
					Msg("Webhook delivery failed")
			}
		})
	}
	p.Wait()
}
