package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ledger-core/internal/custom_err"
	"ledger-core/pkg/response"
)

// writeLedgerError maps a service error to its status and code. Ledger errors carry
// their message to the client as is; anything else is logged and hidden.
func writeLedgerError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status, code := http.StatusBadRequest, ""

	switch {
	case errors.Is(err, custom_err.ErrInvalidAmount):
		code = "invalid_amount"
	case errors.Is(err, custom_err.ErrNegativeBalance):
		code = "negative_balance"
	case errors.Is(err, custom_err.ErrNegativeOrZeroAmount):
		code = "non_positive_amount"
	case errors.Is(err, custom_err.ErrSelfTransfer):
		code = "self_transfer"
	case errors.Is(err, custom_err.ErrSourceAccountNotFound),
		errors.Is(err, custom_err.ErrDestinationAccountNotFound):
		code = "account_not_found"
	case errors.Is(err, custom_err.ErrInsufficientFunds):
		code = "insufficient_funds"
	case errors.Is(err, custom_err.ErrAccountNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, custom_err.ErrInvalidInput):
		code = "invalid_input"
	default:
		log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}

	message := custom_err.Message(err)
	if message == "" {
		message = err.Error()
	}

	log.Info("request rejected", slog.String("op", op), slog.String("code", code), slog.String("reason", message))
	response.WriteJSONError(w, log, status, code, message)
}
