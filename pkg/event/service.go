package event

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/pkg/datekey"
	"github.com/anonygrammer69/Menelogium/pkg/user"
	log "github.com/sirupsen/logrus"
)

// ErrEmptyTitle rejects a creation before any store call is made.
var ErrEmptyTitle = errors.New("event title must not be empty")

type Service interface {
	ListEvents(ctx context.Context) ([]Event, error)
	CreateEvent(ctx context.Context, dateKey string, title string) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListEvents(ctx context.Context) ([]Event, error) {
	ownerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEvents(ctx, ownerUid)
}

// CreateEvent validates and persists a new event for the current user, then
// announces it on the bus. The announcement happens only after the store has
// confirmed the write, and its outcome never affects the returned event.
func (s *ServiceImpl) CreateEvent(ctx context.Context, dateKey string, title string) (Event, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return Event{}, ErrEmptyTitle
	}
	if _, err := datekey.Decode(dateKey); err != nil {
		return Event{}, err
	}

	stored, err := s.repo.StoreEvent(ctx, currentUser.Uid, Event{DateKey: dateKey, Title: title})
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{
		Id:         stored.Id,
		OwnerUid:   stored.OwnerUid,
		OwnerEmail: currentUser.Email,
		Title:      stored.Title,
		DateKey:    stored.DateKey,
	})); err != nil {
		// The event exists regardless of what subscribers did with it.
		log.Errorf("event created but publishing notification failed: %v", err)
	}

	return stored, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	ownerUid, err := user.CurrentUid(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteEvent(ctx, ownerUid, id)
}
