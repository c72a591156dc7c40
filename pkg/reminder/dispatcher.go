// Package reminder delivers best-effort event-created notifications to an
// external webhook. Delivery is fire-and-forget: persistence is authoritative
// and a lost reminder is never surfaced to the user.
package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anonygrammer69/Menelogium/internal/config"
	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Notification is the flat payload posted to the webhook.
type Notification struct {
	EventTitle string `json:"eventTitle"`
	UserEmail  string `json:"userEmail"`
	EventDate  string `json:"eventDate"`
	Uid        string `json:"uid"`
	Timestamp  string `json:"timestamp"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, notification Notification) error
}

// WebhookDispatcher posts notifications to a configured URL. Each creation
// gets at most one attempt; there is no retry queue.
type WebhookDispatcher struct {
	url    string
	client *http.Client
	clock  utils.Clock
}

func NewWebhookDispatcher(cfg config.Webhook, clock utils.Clock) *WebhookDispatcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookDispatcher{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
		clock:  clock,
	}
}

// Register subscribes the dispatcher to created events on the bus. The bus is
// synchronous, so the handler hands the HTTP call off to a goroutine and
// returns nil unconditionally: dispatch failure must never reach the
// publishing service. With no URL configured dispatch is disabled entirely.
func (d *WebhookDispatcher) Register(bus *event_bus.EventBus) {
	if d.url == "" {
		log.Info("Reminder webhook URL not configured, dispatch disabled")
		return
	}

	event_bus.SubscribeTyped[event_bus.CalendarEventCreated](bus, event_bus.CalendarEventCreatedType,
		func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
			notification := Notification{
				EventTitle: e.Data.Title,
				UserEmail:  e.Data.OwnerEmail,
				EventDate:  e.Data.DateKey,
				Uid:        e.Data.OwnerUid,
				Timestamp:  d.clock.Now().UTC().Format(time.RFC3339),
			}

			// The request context ends with the request; the notification
			// outlives it but keeps its values.
			ctx := context.WithoutCancel(e.Context())
			go func() {
				if err := d.Dispatch(ctx, notification); err != nil {
					log.Errorf("failed to send reminder notification: %v", err)
				}
			}()
			return nil
		})
}

// Dispatch posts one notification. Any non-2xx response counts as failure.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, notification Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned non-2xx status: %d", resp.StatusCode)
	}

	log.Debugf("Reminder notification delivered for event on %s", notification.EventDate)
	return nil
}
