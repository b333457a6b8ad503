package custom_err

import (
	"errors"
	"fmt"

	"ledger-core/internal/amount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// Amount errors
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrNegativeBalance      = errors.New("negative balance")
	ErrNegativeOrZeroAmount = errors.New("amount is not greater than zero")

	// Transfer errors
	ErrSelfTransfer               = errors.New("self transfer")
	ErrSourceAccountNotFound      = errors.New("source account not found")
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	ErrInsufficientFunds          = errors.New("insufficient funds")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// LedgerError is an expected, recoverable ledger failure. Message is the text shown
// to the client; Kind is one of the sentinels above.
type LedgerError struct {
	Kind    error
	Message string
}

func (e *LedgerError) Error() string {
	return e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.Kind
}

// InsufficientFundsError reports the source account and the balance it held when
// the transfer was rejected.
type InsufficientFundsError struct {
	AccountID uuid.UUID
	Balance   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("From Account %s does not have enough balance. Balance is %s", e.AccountID, amount.Format(e.Balance))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

func InvalidAmount(text string) error {
	return &LedgerError{Kind: ErrInvalidAmount, Message: fmt.Sprintf("Amount , %s is not a valid amount.", text)}
}

func NegativeBalance(balance decimal.Decimal) error {
	return &LedgerError{Kind: ErrNegativeBalance, Message: fmt.Sprintf("Balance, %s, is less than 0.", amount.Format(balance))}
}

func NegativeOrZeroAmount(value decimal.Decimal) error {
	return &LedgerError{Kind: ErrNegativeOrZeroAmount, Message: fmt.Sprintf("Amount, %s, is not greater than 0.", amount.Format(value))}
}

func SelfTransfer() error {
	return &LedgerError{Kind: ErrSelfTransfer, Message: "Can't transfer money to the same account."}
}

func SourceAccountNotFound(id uuid.UUID) error {
	return &LedgerError{Kind: ErrSourceAccountNotFound, Message: fmt.Sprintf("From Account %s not found.", id)}
}

func DestinationAccountNotFound(id uuid.UUID) error {
	return &LedgerError{Kind: ErrDestinationAccountNotFound, Message: fmt.Sprintf("To Account %s not found.", id)}
}

func AccountNotFound(id uuid.UUID) error {
	return &LedgerError{Kind: ErrAccountNotFound, Message: fmt.Sprintf("Account %s not found.", id)}
}

func InsufficientFunds(id uuid.UUID, balance decimal.Decimal) error {
	return &InsufficientFundsError{AccountID: id, Balance: balance}
}

func InvalidInput(message string) error {
	return &LedgerError{Kind: ErrInvalidInput, Message: message}
}

// Message returns the client-facing text of a ledger error, or "" when err is not one.
func Message(err error) string {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Message
	}
	var fundsErr *InsufficientFundsError
	if errors.As(err, &fundsErr) {
		return fundsErr.Error()
	}
	return ""
}
