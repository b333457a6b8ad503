package handlers

import (
	"log/slog"
	"net/http"

	"ledger-core/internal/api/middlew"
	"ledger-core/internal/models"
	"ledger-core/internal/service"
	"ledger-core/pkg/response"
)

type TransferHandler struct {
	service service.Transfers
}

func NewTransferHandler(service service.Transfers) *TransferHandler {
	return &TransferHandler{
		service: service,
	}
}

// Transfer godoc
// @Summary      Transfer between accounts
// @Description  Moves a positive amount from one account to another. Either both balances change or neither does.
// @Tags         transfer
// @Produce      json
// @Param        fromId query string true "Source account ID" format(uuid)
// @Param        toId   query string true "Destination account ID" format(uuid)
// @Param        amount query string true "Amount, a positive decimal" example(2.50)
// @Success      200 {object} models.TransferResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /transfer [post]
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Transfer"
	log := middlew.GetLogger(r.Context())

	query := r.URL.Query()
	fromID, err := uuidParam(query, "fromId")
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}
	toID, err := uuidParam(query, "toId")
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}
	value, err := textParam(query, "amount")
	if err != nil {
		writeLedgerError(w, log, op, err)
		return
	}

	log.Info("transfer request",
		slog.String("op", op),
		slog.String("from_id", fromID.String()),
		slog.String("to_id", toID.String()),
		slog.String("amount", value))

	if err := h.service.Transfer(r.Context(), fromID, toID, value); err != nil {
		writeLedgerError(w, log, op, err)
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.TransferResponse{Message: "Transfer completed"})
}
