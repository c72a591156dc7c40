package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrStoreUnavailable means a read could not complete. Callers present an
// empty event set instead of failing.
var ErrStoreUnavailable = errors.New("event store unavailable")

// ErrStoreWriteFailed means a create or delete was not confirmed. Callers
// must not assume the write happened.
var ErrStoreWriteFailed = errors.New("event store write failed")

type Repository interface {
	// StoreEvent persists the event for the owner and returns it with the
	// store-assigned id.
	StoreEvent(ctx context.Context, ownerUid string, event Event) (Event, error)
	// GetEvents returns all events of the owner in insertion order.
	GetEvents(ctx context.Context, ownerUid string) ([]Event, error)
	// DeleteEvent removes the owner's event with the given id. Deleting an
	// id that does not exist is not an error.
	DeleteEvent(ctx context.Context, ownerUid string, id string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvent(ctx context.Context, ownerUid string, event Event) (Event, error) {
	query := `INSERT INTO events (id, owner_uid, date_key, title, created_at) VALUES ($1, $2, $3, $4, $5)`

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, query, id, ownerUid, event.DateKey, event.Title, time.Now().UnixMilli())
	if err != nil {
		log.Errorf("could not store event: %v", err)
		return Event{}, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}

	event.Id = id
	event.OwnerUid = ownerUid
	return event, nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, ownerUid string) ([]Event, error) {
	// created_at then id keeps the order stable when two events share a
	// millisecond.
	query := `SELECT id, date_key, title
              FROM events
              WHERE owner_uid = $1
              ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, ownerUid)
	if err != nil {
		log.Errorf("could not query events: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var event Event
		if err := rows.Scan(&event.Id, &event.DateKey, &event.Title); err != nil {
			log.Errorf("could not scan row: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		event.OwnerUid = ownerUid
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return events, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, ownerUid string, id string) error {
	query := `DELETE FROM events WHERE id = $1 AND owner_uid = $2`
	_, err := r.db.ExecContext(ctx, query, id, ownerUid)
	if err != nil {
		log.Errorf("could not delete event: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	// Zero rows affected means the event was already gone; deletes are
	// idempotent.
	return nil
}
