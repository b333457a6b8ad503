package models

import (
	"time"

	"ledger-core/internal/amount"

	"github.com/google/uuid"
)

type LedgerEventType string

const (
	EventAccountCreated    LedgerEventType = "account_created"
	EventTransferCompleted LedgerEventType = "transfer_completed"
)

// LedgerEvent is published after an account is created or a transfer commits
type LedgerEvent struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       LedgerEventType `json:"type"`
	AccountID  uuid.UUID       `json:"account_id,omitzero"`  // created account
	CustomerID uuid.UUID       `json:"customer_id,omitzero"` // owner of the created account
	FromID     uuid.UUID       `json:"from_id,omitzero"`
	ToID       uuid.UUID       `json:"to_id,omitzero"`
	Amount     string          `json:"amount"` // opening balance or transferred amount, exact text
	Timestamp  time.Time       `json:"timestamp"`
}

func NewAccountCreatedEvent(a *Account, at time.Time) LedgerEvent {
	return LedgerEvent{
		EventID:    uuid.New(),
		Type:       EventAccountCreated,
		AccountID:  a.ID,
		CustomerID: a.CustomerID,
		Amount:     amount.Format(a.Balance),
		Timestamp:  at,
	}
}

func NewTransferCompletedEvent(fromID, toID uuid.UUID, value string, at time.Time) LedgerEvent {
	return LedgerEvent{
		EventID:   uuid.New(),
		Type:      EventTransferCompleted,
		FromID:    fromID,
		ToID:      toID,
		Amount:    value,
		Timestamp: at,
	}
}

// PartitionKey keeps all events of one account on the same partition
func (e LedgerEvent) PartitionKey() string {
	if e.Type == EventTransferCompleted {
		return e.FromID.String()
	}
	return e.AccountID.String()
}
