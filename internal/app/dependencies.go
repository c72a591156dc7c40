package app

import (
	"database/sql"

	"github.com/anonygrammer69/Menelogium/internal/config"
	"github.com/anonygrammer69/Menelogium/internal/event_bus"
	"github.com/anonygrammer69/Menelogium/internal/utils"
	"github.com/anonygrammer69/Menelogium/pkg/calendar"
	"github.com/anonygrammer69/Menelogium/pkg/chat"
	"github.com/anonygrammer69/Menelogium/pkg/event"
	"github.com/anonygrammer69/Menelogium/pkg/event_view"
	"github.com/anonygrammer69/Menelogium/pkg/reminder"
	"github.com/anonygrammer69/Menelogium/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	CalendarHandler *calendar.Handler

	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler

	ViewRegistry *event_view.Registry
	ViewHandler  *event_view.Handler

	ReminderDispatcher *reminder.WebhookDispatcher

	ChatClient  chat.Client
	ChatHandler *chat.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.EventBus)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CalendarHandler = calendar.NewHandler(deps.Clock)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.EventBus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ViewRegistry = event_view.NewRegistry(deps.EventService)
	deps.ViewRegistry.Register(deps.EventBus)
	deps.ViewHandler = event_view.NewHandler(deps.ViewRegistry)

	deps.ReminderDispatcher = reminder.NewWebhookDispatcher(cfg.Webhook, deps.Clock)
	deps.ReminderDispatcher.Register(deps.EventBus)

	deps.ChatClient = chat.NewClient(cfg.OpenAI, nil)
	deps.ChatHandler = chat.NewHandler(deps.ChatClient)

	return deps
}
