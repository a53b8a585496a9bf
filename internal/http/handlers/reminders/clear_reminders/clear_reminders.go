package clearreminders

import (
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/clear_reminders"
	"remindbot/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Count uint `json:"count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		response.RenderError(rw, "user ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{UserID: user.ID(userID)})
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Count: result.Count}, http.StatusOK)
}
