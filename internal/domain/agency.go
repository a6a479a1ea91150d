package domain

import "github.com/google/uuid"

// Agency is the branch an account belongs to. It only carries identity;
// its number's check digit is validated elsewhere.
type Agency struct {
	ID     uuid.UUID
	Number string
	Name   string
}

func NewAgency(number, name string) *Agency {
	return &Agency{
		ID:     uuid.New(),
		Number: number,
		Name:   name,
	}
}
