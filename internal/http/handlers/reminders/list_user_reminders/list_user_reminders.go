package listuserreminders

import (
	"net/http"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/list_reminders"
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
	Reminders []response.Reminder `json:"reminders"`
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

	reminders := make([]response.Reminder, 0, len(result.Reminders))
	for _, rem := range result.Reminders {
		dto := response.Reminder{}
		dto.FromDomainType(rem)
		reminders = append(reminders, dto)
	}
	response.Render(rw, Result{Reminders: reminders}, http.StatusOK)
}
