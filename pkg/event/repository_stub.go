package event

import (
	"context"
	"fmt"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests. Errors can be injected
// per operation to exercise failure paths.
type RepositoryStub struct {
	mu     sync.RWMutex
	events []Event
	nextId int

	StoreErr  error
	GetErr    error
	DeleteErr error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{nextId: 1}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, ownerUid string, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.StoreErr != nil {
		return Event{}, r.StoreErr
	}

	event.Id = fmt.Sprintf("event-%d", r.nextId)
	event.OwnerUid = ownerUid
	r.nextId++
	r.events = append(r.events, event)

	return event, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, ownerUid string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.GetErr != nil {
		return nil, r.GetErr
	}

	result := make([]Event, 0, len(r.events))
	for _, event := range r.events {
		if event.OwnerUid == ownerUid {
			result = append(result, event)
		}
	}
	return result, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, ownerUid string, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.DeleteErr != nil {
		return r.DeleteErr
	}

	for i, event := range r.events {
		if event.Id == id && event.OwnerUid == ownerUid {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	// Unknown ids are fine, deletes are idempotent.
	return nil
}

// Reset clears the stub state between tests.
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
	r.nextId = 1
	r.StoreErr = nil
	r.GetErr = nil
	r.DeleteErr = nil
}
