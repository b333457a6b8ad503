package models

import (
	"encoding/json"
	"fmt"

	"ledger-core/internal/amount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a ledger entry owned by a customer
type Account struct {
	ID         uuid.UUID
	Balance    decimal.Decimal
	CustomerID uuid.UUID
	History    []string
}

// Clone returns a deep copy; the history slice is not shared
func (a *Account) Clone() *Account {
	history := make([]string, len(a.History))
	copy(history, a.History)
	return &Account{
		ID:         a.ID,
		Balance:    a.Balance,
		CustomerID: a.CustomerID,
		History:    history,
	}
}

// OpeningEntry is the first history record of every account
func OpeningEntry(balance decimal.Decimal) string {
	return "Balance is " + amount.Format(balance)
}

// TransferEntry is appended, identically, to both sides of a transfer
func TransferEntry(value decimal.Decimal, fromID, toID uuid.UUID) string {
	return fmt.Sprintf("Transferred %s from %s to %s", amount.Format(value), fromID, toID)
}

// AccountResponse is the wire form of an Account
type AccountResponse struct {
	ID         uuid.UUID   `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Balance    json.Number `json:"balance" swaggertype:"number" example:"10.50"`
	CustomerID uuid.UUID   `json:"customerId" example:"9b2e7c1d-3f4a-4b5c-8d6e-7f8091a2b3c4"`
	History    []string    `json:"history"`
}

func NewAccountResponse(a *Account) AccountResponse {
	history := a.History
	if history == nil {
		history = []string{}
	}
	return AccountResponse{
		ID:         a.ID,
		Balance:    json.Number(amount.Format(a.Balance)),
		CustomerID: a.CustomerID,
		History:    history,
	}
}

// TransferResponse is returned by a successful transfer
type TransferResponse struct {
	Message string `json:"message" example:"Transfer completed"`
}
