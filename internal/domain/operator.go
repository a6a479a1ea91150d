package domain

import "github.com/google/uuid"

// Operator is a branch employee allowed to manage the accounts of one agency.
type Operator struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	AgencyNumber string
}
