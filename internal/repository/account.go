package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/josh-kwaku/account-registry/internal/domain"
)

type accountKey struct {
	agencyID uuid.UUID
	number   int64
}

// AccountRepository keeps accounts in memory, unique per agency and number.
// Accounts are cloned on the way in and out so callers never share state
// with the repository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[accountKey]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[accountKey]*domain.Account)}
}

func keyOf(a *domain.Account) (accountKey, error) {
	if a.Agency() == nil {
		return accountKey{}, fmt.Errorf("account has no agency: %w", domain.ErrInvalidRequest)
	}
	return accountKey{agencyID: a.Agency().ID, number: a.Number()}, nil
}

func (r *AccountRepository) GetByNumber(_ context.Context, agencyID uuid.UUID, number int64) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[accountKey{agencyID: agencyID, number: number}]
	if !ok {
		return nil, fmt.Errorf("GetByNumber: %w", domain.ErrNotFound)
	}
	return a.Clone(), nil
}

func (r *AccountRepository) GetByAgency(_ context.Context, agencyID uuid.UUID) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]*domain.Account, 0)
	for k, a := range r.accounts {
		if k.agencyID == agencyID {
			accounts = append(accounts, a.Clone())
		}
	}
	slices.SortFunc(accounts, func(x, y *domain.Account) int {
		return int(x.Number() - y.Number())
	})
	return accounts, nil
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	key, err := keyOf(account)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[key]; exists {
		return fmt.Errorf("Create: %w", domain.ErrAccountExists)
	}
	r.accounts[key] = account.Clone()
	return nil
}

// Update runs fn against a copy of the stored account while holding the
// write lock and stores the copy only when fn succeeds.
func (r *AccountRepository) Update(_ context.Context, agencyID uuid.UUID, number int64, fn func(*domain.Account) error) (*domain.Account, error) {
	key := accountKey{agencyID: agencyID, number: number}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[key]
	if !ok {
		return nil, fmt.Errorf("Update: %w", domain.ErrNotFound)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	if next.Number() != number {
		return nil, fmt.Errorf("Update: account number is immutable: %w", domain.ErrInvalidRequest)
	}

	r.accounts[key] = next
	return next.Clone(), nil
}
