package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/anonygrammer69/Menelogium/internal/rest"
	log "github.com/sirupsen/logrus"
)

type PromptDTO struct {
	Prompt string `json:"prompt"`
}

type ResultDTO struct {
	Result string `json:"result"`
}

type Handler struct {
	client Client
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// Complete handles POST /api/chat.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request PromptDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Debugf("Failed to decode request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}
	if strings.TrimSpace(request.Prompt) == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Prompt must not be empty"})
		return
	}

	result, err := h.client.Complete(r.Context(), request.Prompt)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Assistant is not configured"})
			return
		}
		log.Errorf("Failed to complete prompt: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Error contacting assistant", Details: err.Error()})
		return
	}

	if err := json.NewEncoder(w).Encode(ResultDTO{Result: result}); err != nil {
		log.Errorf("Failed to encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
