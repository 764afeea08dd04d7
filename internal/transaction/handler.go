// AngelaMos | 2026
// handler.go

package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/transactions", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/deposit", h.Deposit)
		r.Post("/withdraw", h.Withdraw)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/transactions", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/pending", h.ListPending)
		r.Patch("/{transactionID}/status", h.UpdateStatus)
	})
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	txn, err := h.service.Deposit(r.Context(), userID, req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	core.Created(w, ToTransactionResponse(txn))
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	txn, err := h.service.Withdraw(r.Context(), userID, req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	core.Created(w, ToTransactionResponse(txn))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	txns, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TransactionListResponse{
		Transactions: ToTransactionResponseList(txns),
	})
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	txns, err := h.service.ListPending(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TransactionListResponse{
		Transactions: ToTransactionResponseList(txns),
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	txn, err := h.service.UpdateStatus(r.Context(), transactionID, req.Status)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(txn))
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField):
		core.JSONError(w, core.NewAppError(
			err, err.Error(), http.StatusBadRequest, "MISSING_FIELD"))
	case errors.Is(err, ledger.ErrInvalidAmount):
		core.JSONError(w, core.NewAppError(
			err, "amount must be a positive number",
			http.StatusBadRequest, "INVALID_AMOUNT"))
	case errors.Is(err, ErrAmountOutOfRange):
		core.JSONError(w, core.NewAppError(
			err, "amount outside the allowed withdrawal range",
			http.StatusBadRequest, "AMOUNT_OUT_OF_RANGE"))
	case errors.Is(err, ledger.ErrInvalidPlan):
		core.JSONError(w, core.NewAppError(
			err, "unknown plan", http.StatusBadRequest, "INVALID_PLAN"))
	case errors.Is(err, ErrInvalidStatus):
		core.JSONError(w, core.NewAppError(
			err, "status must be approved or rejected",
			http.StatusBadRequest, "INVALID_STATUS"))
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONError(w, core.UnauthorizedError("invalid password"))
	case errors.Is(err, ledger.ErrInsufficientBalance):
		core.JSONError(w, core.NewAppError(
			err, "insufficient balance",
			http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"))
	case errors.Is(err, ErrFinalized):
		core.JSONError(w, core.NewAppError(
			err, "transaction has already been reviewed",
			http.StatusConflict, "TRANSACTION_FINALIZED"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "transaction")
	default:
		core.InternalServerError(w, err)
	}
}
