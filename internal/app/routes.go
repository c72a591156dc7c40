package app

import (
	"github.com/anonygrammer69/Menelogium/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Month grid
	r.HandleFunc("/api/calendar/grid", deps.CalendarHandler.GetGrid).Methods("GET")

	// Calendar view
	r.HandleFunc("/api/calendar/view", deps.ViewHandler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/view/composer", deps.ViewHandler.OpenComposer).Methods("POST")
	r.HandleFunc("/api/calendar/view/composer", deps.ViewHandler.CancelComposer).Methods("DELETE")
	r.HandleFunc("/api/calendar/view/event", deps.ViewHandler.SubmitEvent).Methods("POST")
	r.HandleFunc("/api/calendar/view/event/{eventId}", deps.ViewHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/view/day", deps.ViewHandler.GetDayEvents).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/calendar/view/month", deps.ViewHandler.GetMonthEvents).Queries("month", "{month}").Methods("GET")

	// Assistant
	r.HandleFunc("/api/chat", deps.ChatHandler.Complete).Methods("POST")
}
