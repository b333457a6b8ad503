package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledger-core/internal/amount"
	"ledger-core/internal/custom_err"
	"ledger-core/internal/models"
	"ledger-core/internal/storage/memory"

	"github.com/google/uuid"
)

type Transfers interface {
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amountText string) error
}

type TransferService struct {
	repo   memory.AccountRepository
	events EventPublisher
	log    *slog.Logger
}

func NewTransferService(repo memory.AccountRepository, events EventPublisher, log *slog.Logger) *TransferService {
	return &TransferService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// Transfer moves amountText from fromID to toID. Checks run in a fixed order and the
// first failing one is returned; nothing is written unless every check passes.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID uuid.UUID, amountText string) error {
	const op = "service.Transfer"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	value, err := amount.Parse(amountText)
	if err != nil {
		return custom_err.InvalidAmount(amountText)
	}
	if !value.IsPositive() {
		return custom_err.NegativeOrZeroAmount(value)
	}
	if fromID == toID {
		return custom_err.SelfTransfer()
	}
	if !s.repo.Exists(ctx, fromID) {
		return custom_err.SourceAccountNotFound(fromID)
	}
	if !s.repo.Exists(ctx, toID) {
		return custom_err.DestinationAccountNotFound(toID)
	}

	record := models.TransferEntry(value, fromID, toID)

	err = s.repo.UpdatePair(ctx, fromID, toID, func(from, to *models.Account) error {
		if value.GreaterThan(from.Balance) {
			return custom_err.InsufficientFunds(fromID, from.Balance)
		}

		from.Balance = from.Balance.Sub(value)
		from.History = append(from.History, record)

		to.Balance = to.Balance.Add(value)
		to.History = append(to.History, record)
		return nil
	})
	if err != nil {
		if custom_err.Message(err) == "" {
			return fmt.Errorf("%s: %w", op, err)
		}
		return err
	}

	s.log.Info("account transfer complete", slog.String("transfer", record))

	s.events.Publish(models.NewTransferCompletedEvent(fromID, toID, amount.Format(value), time.Now()))
	return nil
}
