package event

import (
	"context"
	"errors"
	"testing"

	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/pkg/datekey"
	"github.com/anonygrammer69/Menelogium/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, *RepositoryStub, *event_bus.EventBus, context.Context) {
	t.Helper()

	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus)
	ctx := user.WithUser(context.Background(), user.User{
		Uid:         "owner-1",
		Email:       "owner@example.com",
		DisplayName: "Owner One",
	})
	return service, repo, bus, ctx
}

func TestCreateEvent(t *testing.T) {
	t.Run("stores event and assigns id", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)

		created, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "05-03-2024", created.DateKey)
		assert.Equal(t, "Dentist", created.Title)
		assert.Equal(t, "owner-1", created.OwnerUid)
	})

	t.Run("trims title before storing", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)

		created, err := service.CreateEvent(ctx, "05-03-2024", "  Dentist  ")

		require.NoError(t, err)
		assert.Equal(t, "Dentist", created.Title)
	})

	t.Run("rejects empty and whitespace-only titles without store call", func(t *testing.T) {
		service, repo, _, ctx := setupServiceTest(t)

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := service.CreateEvent(ctx, "05-03-2024", title)
			assert.ErrorIs(t, err, ErrEmptyTitle)
		}

		events, err := repo.GetEvents(ctx, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("rejects malformed date key without store call", func(t *testing.T) {
		service, repo, _, ctx := setupServiceTest(t)

		_, err := service.CreateEvent(ctx, "5-3-2024", "Dentist")
		assert.ErrorIs(t, err, datekey.ErrInvalidKey)

		events, err := repo.GetEvents(ctx, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("publishes created notification after confirmed write", func(t *testing.T) {
		service, _, bus, ctx := setupServiceTest(t)

		var received []event_bus.CalendarEventCreated
		event_bus.SubscribeTyped[event_bus.CalendarEventCreated](bus, event_bus.CalendarEventCreatedType,
			func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
				received = append(received, e.Data)
				return nil
			})

		created, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")
		require.NoError(t, err)

		require.Len(t, received, 1)
		assert.Equal(t, created.Id, received[0].Id)
		assert.Equal(t, "owner-1", received[0].OwnerUid)
		assert.Equal(t, "owner@example.com", received[0].OwnerEmail)
		assert.Equal(t, "Dentist", received[0].Title)
		assert.Equal(t, "05-03-2024", received[0].DateKey)
	})

	t.Run("subscriber failure does not affect creation result", func(t *testing.T) {
		service, repo, bus, ctx := setupServiceTest(t)

		bus.Subscribe(event_bus.CalendarEventCreatedType, func(e event_bus.Event) error {
			return errors.New("webhook down")
		})

		created, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		events, err := repo.GetEvents(ctx, "owner-1")
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("no notification when the store write fails", func(t *testing.T) {
		service, repo, bus, ctx := setupServiceTest(t)
		repo.StoreErr = ErrStoreWriteFailed

		published := 0
		bus.Subscribe(event_bus.CalendarEventCreatedType, func(e event_bus.Event) error {
			published++
			return nil
		})

		_, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")

		assert.ErrorIs(t, err, ErrStoreWriteFailed)
		assert.Zero(t, published)
	})

	t.Run("fails without authenticated user", func(t *testing.T) {
		service, _, _, _ := setupServiceTest(t)

		_, err := service.CreateEvent(context.Background(), "05-03-2024", "Dentist")
		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestListEvents(t *testing.T) {
	t.Run("returns only the current user's events in insertion order", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)
		otherCtx := user.WithUser(context.Background(), user.User{Uid: "owner-2"})

		first, err := service.CreateEvent(ctx, "05-03-2024", "First")
		require.NoError(t, err)
		_, err = service.CreateEvent(otherCtx, "05-03-2024", "Not mine")
		require.NoError(t, err)
		second, err := service.CreateEvent(ctx, "21-01-2024", "Second")
		require.NoError(t, err)

		events, err := service.ListEvents(ctx)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, first.Id, events[0].Id)
		assert.Equal(t, second.Id, events[1].Id)
	})

	t.Run("propagates store unavailability", func(t *testing.T) {
		service, repo, _, ctx := setupServiceTest(t)
		repo.GetErr = ErrStoreUnavailable

		_, err := service.ListEvents(ctx)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("removes the event", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)
		created, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")
		require.NoError(t, err)

		require.NoError(t, service.DeleteEvent(ctx, created.Id))

		events, err := service.ListEvents(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("deleting a nonexistent id is not an error", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)

		assert.NoError(t, service.DeleteEvent(ctx, "no-such-id"))
	})

	t.Run("cannot delete another user's event", func(t *testing.T) {
		service, _, _, ctx := setupServiceTest(t)
		otherCtx := user.WithUser(context.Background(), user.User{Uid: "owner-2"})

		created, err := service.CreateEvent(ctx, "05-03-2024", "Dentist")
		require.NoError(t, err)

		// Idempotent from the other owner's point of view, but the event stays.
		require.NoError(t, service.DeleteEvent(otherCtx, created.Id))

		events, err := service.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}
