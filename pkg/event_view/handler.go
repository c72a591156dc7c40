package event_view

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/anonygrammer69/Menelogium/internal/rest"
	"github.com/anonygrammer69/Menelogium/pkg/datekey"
	"github.com/anonygrammer69/Menelogium/pkg/event"
	"github.com/anonygrammer69/Menelogium/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	registry *Registry
}

type ViewDTO struct {
	State    State            `json:"state"`
	Events   []event.EventDTO `json:"events"`
	Composer *ComposerDTO     `json:"composer,omitempty"`
}

type ComposerDTO struct {
	Date  string `json:"date"`
	Title string `json:"title"`
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry}
}

func (h *Handler) sessionFor(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	uid, err := user.CurrentUid(r.Context())
	if err != nil {
		http.Error(w, "no authenticated user", http.StatusUnauthorized)
		return nil, false
	}
	return h.registry.SessionFor(uid), true
}

// GetView returns the session state. The first authenticated request loads
// the event set; a load failure is reported through the state, not an error
// status, so the client renders an empty calendar with a notice.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	if err := session.Load(r.Context()); err != nil {
		log.Errorf("failed to load view: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeView(w, session)
}

func (h *Handler) OpenComposer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	if err := session.OpenComposer(body.Date); err != nil {
		switch {
		case errors.Is(err, datekey.ErrInvalidKey):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid date",
				Details: "'date' must be in DD-MM-YYYY format",
			})
		case errors.Is(err, ErrNotLoaded):
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Calendar is not loaded"})
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.writeView(w, session)
}

func (h *Handler) CancelComposer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	if err := session.CancelComposer(); err != nil {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No composer is open"})
		return
	}

	h.writeView(w, session)
}

func (h *Handler) SubmitEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := session.Submit(r.Context(), body.Title)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEmptyTitle):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Event title must not be empty"})
		case errors.Is(err, ErrNotComposing):
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "No composer is open"})
		case errors.Is(err, event.ErrStoreWriteFailed):
			// Composer stays open with the typed title; the client retries.
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Could not save the event, please retry"})
		default:
			log.Errorf("failed to submit event: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(event.EventDTO{Id: created.Id, Date: created.DateKey, Title: created.Title})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["eventId"]
	if err := session.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotLoaded) {
			http.Error(w, "calendar is not loaded", http.StatusConflict)
			return
		}
		if errors.Is(err, event.ErrStoreWriteFailed) || errors.Is(err, event.ErrStoreUnavailable) {
			http.Error(w, "could not delete the event, please retry", http.StatusServiceUnavailable)
			return
		}
		log.Errorf("failed to delete event: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDayEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	dateKey := r.URL.Query().Get("date")
	if _, err := datekey.Decode(dateKey); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid date",
			Details: "'date' must be in DD-MM-YYYY format",
		})
		return
	}

	h.writeEvents(w, session.EventsForDay(dateKey))
}

func (h *Handler) GetMonthEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, ok := h.sessionFor(w, r)
	if !ok {
		return
	}

	monthKey := r.URL.Query().Get("month")
	if _, err := time.Parse("01-2006", monthKey); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid month",
			Details: "'month' must be in MM-YYYY format",
		})
		return
	}

	h.writeEvents(w, session.EventsForMonth(monthKey))
}

func (h *Handler) writeEvents(w http.ResponseWriter, events []event.Event) {
	dtos := make([]event.EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, event.EventDTO{Id: e.Id, Date: e.DateKey, Title: e.Title})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeView(w http.ResponseWriter, session *Session) {
	events := session.Events()
	dto := ViewDTO{
		State:  session.State(),
		Events: make([]event.EventDTO, 0, len(events)),
	}
	for _, e := range events {
		dto.Events = append(dto.Events, event.EventDTO{Id: e.Id, Date: e.DateKey, Title: e.Title})
	}
	if composer, open := session.Composer(); open {
		dto.Composer = &ComposerDTO{Date: composer.DateKey, Title: composer.Title}
	}

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
