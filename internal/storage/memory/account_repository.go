package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"ledger-core/internal/custom_err"
	"ledger-core/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, customerID uuid.UUID, balance decimal.Decimal) (*models.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Exists(ctx context.Context, id uuid.UUID) bool

	// UpdatePair locks both accounts and passes fn working copies of them. The copies
	// replace the stored balance and history only when fn returns nil.
	UpdatePair(ctx context.Context, fromID, toID uuid.UUID, fn func(from, to *models.Account) error) error

	TotalBalance(ctx context.Context) decimal.Decimal
	Count(ctx context.Context) int
}

// accountRecord pairs an account with the lock that guards its balance and history.
type accountRecord struct {
	mu      sync.RWMutex
	account models.Account
}

// MemAccountRepository keeps accounts in process memory. The map lock only guards
// id generation, insertion and lookup; each record has its own lock.
type MemAccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*accountRecord
	newID    func() uuid.UUID
}

func NewAccountRepository() AccountRepository {
	return &MemAccountRepository{
		accounts: make(map[uuid.UUID]*accountRecord),
		newID:    uuid.New,
	}
}

func (r *MemAccountRepository) Create(ctx context.Context, customerID uuid.UUID, balance decimal.Decimal) (*models.Account, error) {
	const op = "storage.Create"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if balance.IsNegative() {
		return nil, custom_err.NegativeBalance(balance)
	}

	rec := &accountRecord{
		account: models.Account{
			Balance:    balance,
			CustomerID: customerID,
			History:    []string{models.OpeningEntry(balance)},
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for _, taken := r.accounts[id]; taken; _, taken = r.accounts[id] {
		id = r.newID()
	}
	rec.account.ID = id
	r.accounts[id] = rec

	return rec.account.Clone(), nil
}

func (r *MemAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	const op = "storage.GetByID"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, ok := r.lookup(id)
	if !ok {
		return nil, custom_err.AccountNotFound(id)
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()
	return rec.account.Clone(), nil
}

func (r *MemAccountRepository) Exists(_ context.Context, id uuid.UUID) bool {
	_, ok := r.lookup(id)
	return ok
}

func (r *MemAccountRepository) UpdatePair(ctx context.Context, fromID, toID uuid.UUID, fn func(from, to *models.Account) error) error {
	const op = "storage.UpdatePair"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if fromID == toID {
		return custom_err.SelfTransfer()
	}

	from, ok := r.lookup(fromID)
	if !ok {
		return custom_err.SourceAccountNotFound(fromID)
	}
	to, ok := r.lookup(toID)
	if !ok {
		return custom_err.DestinationAccountNotFound(toID)
	}

	first, second := from, to
	if bytes.Compare(toID[:], fromID[:]) < 0 {
		first, second = to, from
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	fromWork := from.account.Clone()
	toWork := to.account.Clone()
	if err := fn(fromWork, toWork); err != nil {
		return err
	}

	from.account.Balance, from.account.History = fromWork.Balance, fromWork.History
	to.account.Balance, to.account.History = toWork.Balance, toWork.History
	return nil
}

// TotalBalance read-locks every account in id order, so the sum never includes half
// of a transfer.
func (r *MemAccountRepository) TotalBalance(_ context.Context) decimal.Decimal {
	r.mu.RLock()
	ids := make([]uuid.UUID, 0, len(r.accounts))
	recs := make(map[uuid.UUID]*accountRecord, len(r.accounts))
	for id, rec := range r.accounts {
		ids = append(ids, id)
		recs[id] = rec
	}
	r.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	total := decimal.Zero
	for _, id := range ids {
		recs[id].mu.RLock()
	}
	for _, id := range ids {
		total = total.Add(recs[id].account.Balance)
	}
	for _, id := range ids {
		recs[id].mu.RUnlock()
	}
	return total
}

func (r *MemAccountRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

func (r *MemAccountRepository) lookup(id uuid.UUID) (*accountRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.accounts[id]
	return rec, ok
}
