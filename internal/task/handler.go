// AngelaMos | 2026
// handler.go

package task

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/complete", h.Complete)
	})
}

type CompleteResponse struct {
	Balance        decimal.Decimal      `json:"balance"`
	Plan           string               `json:"plan"`
	TodayEarning   decimal.Decimal      `json:"today_earning"`
	CompletedTasks []CompletionResponse `json:"completed_tasks"`
}

type CompletionResponse struct {
	Plan        string          `json:"plan"`
	Amount      decimal.Decimal `json:"amount"`
	CompletedAt time.Time       `json:"completed_at"`
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.Complete(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoPlanActivated):
			core.JSONError(w, core.NewAppError(
				err, "no plan activated",
				http.StatusUnprocessableEntity, "NO_PLAN_ACTIVATED"))
		case errors.Is(err, ErrAlreadyCompleted):
			core.JSONError(w, core.NewAppError(
				err, "task already completed today",
				http.StatusConflict, "ALREADY_COMPLETED_TODAY"))
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	completions := make([]CompletionResponse, 0, len(result.CompletedTasks))
	for _, c := range result.CompletedTasks {
		completions = append(completions, CompletionResponse{
			Plan:        c.Plan,
			Amount:      c.Amount,
			CompletedAt: c.CompletedAt,
		})
	}

	core.OK(w, CompleteResponse{
		Balance:        result.Balance,
		Plan:           result.Plan,
		TodayEarning:   result.TodayEarning,
		CompletedTasks: completions,
	})
}
