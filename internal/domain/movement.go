package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementKindCredit MovementKind = "credit"
	MovementKindDebit  MovementKind = "debit"
)

type Movement struct {
	ID          uuid.UUID
	Kind        MovementKind
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
