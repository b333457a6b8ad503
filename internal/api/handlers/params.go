package handlers

import (
	"fmt"
	"net/url"

	"ledger-core/internal/custom_err"

	"github.com/google/uuid"
)

func uuidParam(query url.Values, name string) (uuid.UUID, error) {
	if !query.Has(name) {
		return uuid.Nil, custom_err.InvalidInput(fmt.Sprintf("%s is required", name))
	}
	id, err := uuid.Parse(query.Get(name))
	if err != nil {
		return uuid.Nil, custom_err.InvalidInput(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// textParam returns the raw value; an empty value is left for the service to reject.
func textParam(query url.Values, name string) (string, error) {
	if !query.Has(name) {
		return "", custom_err.InvalidInput(fmt.Sprintf("%s is required", name))
	}
	return query.Get(name), nil
}
