package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/josh-kwaku/account-registry/internal/domain"
)

// OperatorRepository is read-only once built.
type OperatorRepository struct {
	byEmail map[string]*domain.Operator
}

func NewOperatorRepository(operators ...*domain.Operator) *OperatorRepository {
	r := &OperatorRepository{byEmail: make(map[string]*domain.Operator, len(operators))}
	for _, op := range operators {
		r.byEmail[strings.ToLower(op.Email)] = op
	}
	return r
}

func (r *OperatorRepository) GetByEmail(_ context.Context, email string) (*domain.Operator, error) {
	op, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("GetByEmail: %w", domain.ErrNotFound)
	}
	return op, nil
}
