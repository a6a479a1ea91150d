package domain

import (
	"fmt"
	"math"
)

const (
	MinAccountNumber int64 = 0
	MaxAccountNumber int64 = 99999
)

// Account is a checking or savings account held at an Agency.
//
// Fields are guarded by their setters: a setter either stores the new value
// or returns an error and leaves the account untouched. Account is not safe
// for concurrent use.
type Account struct {
	number         int64
	savings        bool
	special        bool
	overdraftLimit float64
	balance        float64
	agency         *Agency
	movements      []Movement
}

// NewAccount returns a checking account with number 0, no overdraft limit and
// an empty movement history.
func NewAccount() *Account {
	return &Account{movements: []Movement{}}
}

// NewAccountWithAgency assigns agency and special before validating
// overdraftLimit against them. No account is returned when the limit is
// rejected.
func NewAccountWithAgency(agency *Agency, special bool, overdraftLimit float64) (*Account, error) {
	a := NewAccount()
	a.agency = agency
	a.special = special
	if err := a.SetOverdraftLimit(overdraftLimit); err != nil {
		return nil, fmt.Errorf("NewAccountWithAgency: %w", err)
	}
	return a, nil
}

func (a *Account) Number() int64 { return a.number }

func (a *Account) SetNumber(n int64) error {
	if n < MinAccountNumber || n > MaxAccountNumber {
		return fmt.Errorf("SetNumber: %d outside [%d, %d]: %w", n, MinAccountNumber, MaxAccountNumber, ErrInvalidArgument)
	}
	a.number = n
	return nil
}

func (a *Account) Savings() bool { return a.savings }

func (a *Account) SetSavings(savings bool) { a.savings = savings }

func (a *Account) Special() bool { return a.special }

// SetSpecial fails with ErrInvalidState when clearing the flag would leave a
// positive overdraft limit on a non-special account.
func (a *Account) SetSpecial(special bool) error {
	if !special && a.overdraftLimit > 0 {
		return fmt.Errorf("SetSpecial: overdraft limit %v must be cleared first: %w", a.overdraftLimit, ErrInvalidState)
	}
	a.special = special
	return nil
}

func (a *Account) OverdraftLimit() float64 { return a.overdraftLimit }

// SetOverdraftLimit accepts any non-negative limit on a special account and
// only zero on any other account.
func (a *Account) SetOverdraftLimit(limit float64) error {
	if math.IsNaN(limit) || math.IsInf(limit, 0) || limit < 0 {
		return fmt.Errorf("SetOverdraftLimit: %v is not a non-negative amount: %w", limit, ErrInvalidArgument)
	}
	if !a.special && limit > 0 {
		return fmt.Errorf("SetOverdraftLimit: account is not special: %w", ErrInvalidState)
	}
	a.overdraftLimit = limit
	return nil
}

func (a *Account) Balance() float64 { return a.balance }

func (a *Account) Agency() *Agency { return a.agency }

// Movements returns a copy of the movement history. It is never nil.
func (a *Account) Movements() []Movement {
	out := make([]Movement, len(a.movements))
	copy(out, a.movements)
	return out
}

// Clone returns a deep copy sharing only the Agency reference.
func (a *Account) Clone() *Account {
	c := *a
	c.movements = a.Movements()
	return &c
}

// FormatNumber renders the account number zero padded to five digits.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%05d", n)
}
