package calendar

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/anonygrammer69/Menelogium/internal/rest"
	"github.com/anonygrammer69/Menelogium/internal/utils"
	"github.com/anonygrammer69/Menelogium/pkg/datekey"
)

type Handler struct {
	clock utils.Clock
}

type CellDTO struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	InCurrentMonth bool   `json:"inCurrentMonth"`
	IsToday        bool   `json:"isToday"`
}

func NewHandler(clock utils.Clock) *Handler {
	return &Handler{clock}
}

// GetGrid returns the cells of the month grid. The optional "month" query
// parameter (MM-YYYY) selects the month; it defaults to the current one.
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := h.clock.Now()
	ref := now
	if monthString := r.URL.Query().Get("month"); monthString != "" {
		parsed, err := time.ParseInLocation("01-2006", monthString, now.Location())
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid month format",
				Details: "'month' must be in MM-YYYY format",
			})
			return
		}
		ref = parsed
	}

	cells := make([]CellDTO, 0, 42)
	for cell := range MonthGrid(ref, now) {
		cells = append(cells, CellDTO{
			Date:           datekey.Encode(cell.Date),
			Day:            cell.Date.Day(),
			InCurrentMonth: cell.InCurrentMonth,
			IsToday:        cell.IsToday,
		})
	}

	if err := json.NewEncoder(w).Encode(cells); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
