// Package event_view holds the per-user calendar view state: the loaded event
// set, the composer dialog, and the day/month projections the UI renders.
// The store stays the source of truth on load; confirmed mutations are applied
// to the local set directly instead of refetching.
package event_view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/anonygrammer69/Menelogium/pkg/datekey"
	"github.com/anonygrammer69/Menelogium/pkg/event"
	log "github.com/sirupsen/logrus"
)

type State string

const (
	StateUnloaded   State = "unloaded"
	StateLoading    State = "loading"
	StateLoaded     State = "loaded"
	StateLoadFailed State = "loadFailed"
	StateComposing  State = "composing"
	StateSubmitting State = "submitting"
)

var ErrNotLoaded = errors.New("events are not loaded")
var ErrNotComposing = errors.New("no composer is open")

// Composer is the open event dialog: the clicked date and whatever title text
// has been typed so far. The title survives a failed submission so the user
// can retry.
type Composer struct {
	DateKey string
	Title   string
}

// Session is one user's view of the calendar. All methods are safe for
// concurrent use; the remote calls happen with the session locked, which is
// fine for a single user's interaction stream.
type Session struct {
	mu       sync.Mutex
	service  event.Service
	state    State
	events   []event.Event
	composer Composer
}

func NewSession(service event.Service) *Session {
	return &Session{service: service, state: StateUnloaded}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns the local event set in insertion order.
func (s *Session) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// Composer returns the open composer, if any.
func (s *Session) Composer() (Composer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateComposing && s.state != StateSubmitting {
		return Composer{}, false
	}
	return s.composer, true
}

// Load fetches the user's full event set. A store outage is not fatal: the
// session lands in StateLoadFailed with an empty set and the UI shows a soft
// notice. Load only acts on a session that has never loaded successfully;
// use Reload for an explicit refresh.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnloaded && s.state != StateLoadFailed {
		return nil
	}
	return s.loadLocked(ctx)
}

// Reload refetches the event set wholesale, discarding local state.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateComposing || s.state == StateSubmitting {
		s.composer = Composer{}
	}
	return s.loadLocked(ctx)
}

func (s *Session) loadLocked(ctx context.Context) error {
	s.state = StateLoading

	events, err := s.service.ListEvents(ctx)
	if err != nil {
		if errors.Is(err, event.ErrStoreUnavailable) {
			log.Warnf("could not load events, presenting empty set: %v", err)
			s.state = StateLoadFailed
			s.events = nil
			return nil
		}
		s.state = StateLoadFailed
		s.events = nil
		return fmt.Errorf("failed to load events: %w", err)
	}

	s.state = StateLoaded
	s.events = events
	return nil
}

// OpenComposer opens the event dialog bound to the clicked date.
func (s *Session) OpenComposer(dateKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoaded {
		return ErrNotLoaded
	}
	if _, err := datekey.Decode(dateKey); err != nil {
		return err
	}

	s.composer = Composer{DateKey: dateKey}
	s.state = StateComposing
	return nil
}

// CancelComposer discards the dialog and returns to the loaded view.
func (s *Session) CancelComposer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateComposing {
		return ErrNotComposing
	}
	s.composer = Composer{}
	s.state = StateLoaded
	return nil
}

// Submit validates the typed title locally and writes the event through the
// store. On success the confirmed event is appended to the local set. On a
// failed write the composer stays open with the title preserved so nothing
// the user typed is lost; the local set is untouched either way until the
// store confirms.
func (s *Session) Submit(ctx context.Context, title string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateComposing {
		return event.Event{}, ErrNotComposing
	}

	s.composer.Title = title
	if strings.TrimSpace(title) == "" {
		return event.Event{}, event.ErrEmptyTitle
	}

	s.state = StateSubmitting
	created, err := s.service.CreateEvent(ctx, s.composer.DateKey, title)
	if err != nil {
		s.state = StateComposing
		return event.Event{}, err
	}

	s.events = append(s.events, created)
	s.composer = Composer{}
	s.state = StateLoaded
	return created, nil
}

// Delete removes the event optimistically, then issues the store delete. When
// the store refuses the write, the removed event is re-inserted at its
// original position as the compensating action; the state does not change.
func (s *Session) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoaded {
		return ErrNotLoaded
	}

	index := slices.IndexFunc(s.events, func(e event.Event) bool { return e.Id == id })
	var removed event.Event
	if index >= 0 {
		removed = s.events[index]
		s.events = slices.Delete(slices.Clone(s.events), index, index+1)
	}

	if err := s.service.DeleteEvent(ctx, id); err != nil {
		if index >= 0 {
			s.events = slices.Insert(s.events, index, removed)
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// EventsForDay returns the events of one day in insertion order. Pure query,
// no state transition.
func (s *Session) EventsForDay(dateKey string) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]event.Event, 0)
	for _, e := range s.events {
		if e.DateKey == dateKey {
			result = append(result, e)
		}
	}
	return result
}

// EventsForMonth returns the events whose date key falls in the given MM-YYYY
// month, ascending by calendar date. Matching and ordering work on the numeric
// key components: string-sorting DD-MM-YYYY keys would order days 01..09
// before 10..31 regardless of month.
func (s *Session) EventsForMonth(monthKey string) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	type dated struct {
		event      event.Event
		components datekey.Components
	}
	matched := make([]dated, 0)
	for _, e := range s.events {
		components, err := datekey.Decode(e.DateKey)
		if err != nil {
			log.Warnf("skipping event %s with malformed date key %q", e.Id, e.DateKey)
			continue
		}
		if components.MonthKey() == monthKey {
			matched = append(matched, dated{event: e, components: components})
		}
	}

	slices.SortStableFunc(matched, func(a, b dated) int {
		return a.components.Compare(b.components)
	})

	result := make([]event.Event, 0, len(matched))
	for _, d := range matched {
		result = append(result, d.event)
	}
	return result
}
