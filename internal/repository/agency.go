package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/josh-kwaku/account-registry/internal/domain"
)

type AgencyRepository struct {
	mu       sync.RWMutex
	byNumber map[string]*domain.Agency
}

func NewAgencyRepository(agencies ...*domain.Agency) *AgencyRepository {
	r := &AgencyRepository{byNumber: make(map[string]*domain.Agency, len(agencies))}
	for _, a := range agencies {
		r.byNumber[a.Number] = a
	}
	return r
}

func (r *AgencyRepository) GetByNumber(_ context.Context, number string) (*domain.Agency, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byNumber[number]
	if !ok {
		return nil, fmt.Errorf("GetByNumber: %w", domain.ErrNotFound)
	}
	return a, nil
}

func (r *AgencyRepository) Add(_ context.Context, agency *domain.Agency) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[agency.Number]; exists {
		return fmt.Errorf("Add: agency %s already registered: %w", agency.Number, domain.ErrInvalidRequest)
	}
	r.byNumber[agency.Number] = agency
	return nil
}
