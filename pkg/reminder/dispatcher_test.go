package reminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonygrammer69/Menelogium/internal/config"
	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

func newTestDispatcher(url string) *WebhookDispatcher {
	return NewWebhookDispatcher(
		config.Webhook{URL: url, TimeoutSeconds: 2},
		&utils.MockClock{FixedNow: fixedNow},
	)
}

func TestDispatch_payload(t *testing.T) {
	var received Notification
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher := newTestDispatcher(server.URL)
	err := dispatcher.Dispatch(context.Background(), Notification{
		EventTitle: "Dentist",
		UserEmail:  "owner@example.com",
		EventDate:  "05-03-2024",
		Uid:        "owner-1",
		Timestamp:  fixedNow.Format(time.RFC3339),
	})

	require.NoError(t, err)
	assert.Equal(t, "Dentist", received.EventTitle)
	assert.Equal(t, "owner@example.com", received.UserEmail)
	assert.Equal(t, "05-03-2024", received.EventDate)
	assert.Equal(t, "owner-1", received.Uid)
	assert.Equal(t, "2024-03-05T12:00:00Z", received.Timestamp)
}

func TestDispatch_non2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := newTestDispatcher(server.URL).Dispatch(context.Background(), Notification{})
	assert.ErrorContains(t, err, "non-2xx")
}

func TestDispatch_transportErrorIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	err := newTestDispatcher(server.URL).Dispatch(context.Background(), Notification{})
	assert.Error(t, err)
}

func TestRegister_dispatchesOnCreatedEvent(t *testing.T) {
	delivered := make(chan Notification, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var n Notification
		_ = json.NewDecoder(r.Body).Decode(&n)
		delivered <- n
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	bus := event_bus.NewEventBus()
	newTestDispatcher(server.URL).Register(bus)

	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.CalendarEventCreatedType,
		event_bus.CalendarEventCreated{
			Id:         "event-1",
			OwnerUid:   "owner-1",
			OwnerEmail: "owner@example.com",
			Title:      "Dentist",
			DateKey:    "05-03-2024",
		}))
	require.NoError(t, err)

	select {
	case n := <-delivered:
		assert.Equal(t, "Dentist", n.EventTitle)
		assert.Equal(t, "owner-1", n.Uid)
		assert.Equal(t, "05-03-2024", n.EventDate)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestRegister_failureStaysOnTheBusSide(t *testing.T) {
	attempted := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempted <- struct{}{}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	bus := event_bus.NewEventBus()
	newTestDispatcher(server.URL).Register(bus)

	// Publish must succeed even though delivery fails.
	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.CalendarEventCreatedType,
		event_bus.CalendarEventCreated{Title: "Dentist", DateKey: "05-03-2024"}))
	assert.NoError(t, err)

	select {
	case <-attempted:
	case <-time.After(2 * time.Second):
		t.Fatal("no dispatch attempt was made")
	}
}

func TestRegister_disabledWithoutURL(t *testing.T) {
	bus := event_bus.NewEventBus()
	newTestDispatcher("").Register(bus)

	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.CalendarEventCreatedType,
		event_bus.CalendarEventCreated{Title: "Dentist"}))
	assert.NoError(t, err)
}
