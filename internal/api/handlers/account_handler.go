package handlers

import (
	"log/slog"
	"net/http"

	"ledger-core/internal/api/middlew"
	"ledger-core/internal/custom_err"
	"ledger-core/internal/models"
	"ledger-core/internal/service"
	"ledger-core/pkg/response"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AccountHandler struct {
	service service.Accounts
}

func NewAccountHandler(service service.Accounts) *AccountHandler {
	return &AccountHandler{
		service: service,
	}
}

// CreateAccount godoc
// @Summary      Open an account
// @Description  Opens an account for a customer with an opening balance. The balance is kept at the scale it was given.
// @Tags         account
// @Produce      json
// @Param        customerId query string true "Customer ID" format(uuid)
// @Param        balance    query string true "Opening balance, a non-negative decimal" example(10.50)
// @Success      200 {object} models.AccountResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /account [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreateAccount"
	log := middlew.GetLogger(r.Context())

	query := r.URL.Query()
	customerID, err := uuidParam(query, "customerId")
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}
	balance, err := textParam(query, "balance")
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}

	log.Info("create account request",
		slog.String("op", op),
		slog.String("customer_id", customerID.String()),
		slog.String("balance", balance))

	account, err := h.service.CreateAccount(r.Context(), customerID, balance)
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.NewAccountResponse(account))
}

// GetAccount godoc
// @Summary      Get an account
// @Description  Returns the account with its current balance and full history
// @Tags         account
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} models.AccountResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /account/{id} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetAccount"
	log := middlew.GetLogger(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warn("invalid UUID", slog.String("op", op), slog.String("uuid", idStr))
		writeLedgerError(w, log, op, custom_err.InvalidInput("Invalid account ID format"))
		return
	}

	account, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.NewAccountResponse(account))
}
