package health

import (
	"context"
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/http/handlers/response"
	"time"
)

const pingTimeout = 3 * time.Second

// Pinger reports whether a dependency is reachable, pgxpool.Pool
// satisfies it directly.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

func New(db Pinger) *Handler {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &Handler{db: db}
}

type Result struct {
	Status string `json:"status"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response.Render(rw, Result{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}
	response.Render(rw, Result{Status: "ok"}, http.StatusOK)
}
