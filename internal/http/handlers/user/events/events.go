package events

import (
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	"github.com/r3labs/sse/v2"
)

// Handler subscribes a client to the live stream of its fired reminders.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(log logging.Logger, sseServer *sse.Server) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.RenderError(rw, "user ID is required", http.StatusBadRequest)
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != userID {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}
	h.sseServer.CreateStream(streamID)

	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from reminder events.",
			logging.Entry("userID", userID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to reminder events.",
		logging.Entry("userID", userID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
