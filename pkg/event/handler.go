package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anonygrammer69/Menelogium/internal/rest"
	"github.com/anonygrammer69/Menelogium/pkg/datekey"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service Service
}

type EventDTO struct {
	Id    string `json:"id,omitempty"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "event store unavailable"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body format"})
		return
	}

	created, err := h.service.CreateEvent(r.Context(), dto.Date, dto.Title)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyTitle):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Event title must not be empty"})
		case errors.Is(err, datekey.ErrInvalidKey):
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid event date",
				Details: "'date' must be in DD-MM-YYYY format",
			})
		default:
			log.Errorf("failed to create event: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["eventId"]

	if err := h.service.DeleteEvent(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		Id:    e.Id,
		Date:  e.DateKey,
		Title: e.Title,
	}
}
