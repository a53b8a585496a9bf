package http

import (
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
	clearremindersservice "remindbot/internal/core/services/clear_reminders"
	createreminderservice "remindbot/internal/core/services/create_reminder"
	listremindersservice "remindbot/internal/core/services/list_reminders"
	handlerHealth "remindbot/internal/http/handlers/health"
	handlerClearReminders "remindbot/internal/http/handlers/reminders/clear_reminders"
	handlerCreateReminder "remindbot/internal/http/handlers/reminders/create_reminder"
	handlerListReminders "remindbot/internal/http/handlers/reminders/list_user_reminders"
	handlerEvents "remindbot/internal/http/handlers/user/events"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/r3labs/sse/v2"
)

type RouterParams struct {
	Log            logging.Logger
	SseServer      *sse.Server
	DB             handlerHealth.Pinger
	AllowedOrigins []string
	CreateReminder services.Service[createreminderservice.Input, createreminderservice.Result]
	ListReminders  services.Service[listremindersservice.Input, listremindersservice.Result]
	ClearReminders services.Service[clearremindersservice.Input, clearremindersservice.Result]
}

func NewRouter(params RouterParams) chi.Router {
	if params.Log == nil {
		panic(e.NewNilArgumentError("params.Log"))
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: params.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", handlerHealth.New(params.DB).ServeHTTP)
	router.Post("/reminders", handlerCreateReminder.New(params.CreateReminder).ServeHTTP)
	router.Get("/users/{userID}/reminders", handlerListReminders.New(params.ListReminders).ServeHTTP)
	router.Delete("/users/{userID}/reminders", handlerClearReminders.New(params.ClearReminders).ServeHTTP)
	router.Get("/users/{userID}/events", handlerEvents.New(params.Log, params.SseServer).ServeHTTP)

	return router
}

// NewServer wraps the router in a server with sane header timeouts.
// Write timeout stays unset so SSE subscriptions are not cut off.
func NewServer(address string, router chi.Router) *http.Server {
	return &http.Server{
		Handler:           router,
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
