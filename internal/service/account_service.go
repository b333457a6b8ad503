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

type Accounts interface {
	CreateAccount(ctx context.Context, customerID uuid.UUID, balanceText string) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

type AccountService struct {
	repo   memory.AccountRepository
	events EventPublisher
	log    *slog.Logger
}

func NewAccountService(repo memory.AccountRepository, events EventPublisher, log *slog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// CreateAccount opens an account for customerID with the balance given as text.
// The balance must be a well-formed decimal and not below zero.
func (s *AccountService) CreateAccount(ctx context.Context, customerID uuid.UUID, balanceText string) (*models.Account, error) {
	const op = "service.CreateAccount"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	balance, err := amount.Parse(balanceText)
	if err != nil {
		return nil, custom_err.InvalidAmount(balanceText)
	}
	if balance.IsNegative() {
		return nil, custom_err.NegativeBalance(balance)
	}

	account, err := s.repo.Create(ctx, customerID, balance)
	if err != nil {
		return nil, err
	}

	s.log.Info("account created",
		slog.String("account_id", account.ID.String()),
		slog.String("customer_id", customerID.String()),
		slog.String("balance", amount.Format(account.Balance)))

	s.events.Publish(models.NewAccountCreatedEvent(account, time.Now()))
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.repo.GetByID(ctx, id)
}
