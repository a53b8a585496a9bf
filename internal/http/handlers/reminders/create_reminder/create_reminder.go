package createreminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "remindbot/internal/core/domain/errors"
	ratelimiter "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	service "remindbot/internal/core/services/create_reminder"
	"remindbot/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.Required, validation.Length(0, 32)),
		validation.Field(&i.Query, validation.Required, validation.Length(0, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{UserID: user.ID(input.UserID), Query: input.Query},
	)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrQueryParsing):
			response.RenderError(rw, reminder.ErrQueryParsing.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}
