package handlers

import (
	"net/http"

	"ledger-core/internal/api/middlew"
	"ledger-core/pkg/response"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health is mounted outside /api/v1 and left out of the API docs.
func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSONSuccess(w, middlew.GetLogger(r.Context()), http.StatusOK, HealthResponse{Status: "ok"})
}
