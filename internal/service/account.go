package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/josh-kwaku/account-registry/internal/domain"
	"github.com/josh-kwaku/account-registry/internal/logging"
)

type accountRepo interface {
	GetByNumber(ctx context.Context, agencyID uuid.UUID, number int64) (*domain.Account, error)
	GetByAgency(ctx context.Context, agencyID uuid.UUID) ([]*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, agencyID uuid.UUID, number int64, fn func(*domain.Account) error) (*domain.Account, error)
}

type agencyRepo interface {
	GetByNumber(ctx context.Context, number string) (*domain.Agency, error)
}

type AccountService struct {
	accounts accountRepo
	agencies agencyRepo
}

func NewAccountService(accounts accountRepo, agencies agencyRepo) *AccountService {
	return &AccountService{accounts: accounts, agencies: agencies}
}

type OpenAccountParams struct {
	Number         int64
	Savings        bool
	Special        bool
	OverdraftLimit float64
}

func (s *AccountService) OpenAccount(ctx context.Context, agencyNumber string, p OpenAccountParams) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	agency, err := s.agency(ctx, agencyNumber)
	if err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	account, err := domain.NewAccountWithAgency(agency, p.Special, p.OverdraftLimit)
	if err != nil {
		log.Warn("account rejected", "agency", agencyNumber, "error", err)
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}
	if err := account.SetNumber(p.Number); err != nil {
		log.Warn("account rejected", "agency", agencyNumber, "error", err)
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}
	account.SetSavings(p.Savings)

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	log.Info("account opened",
		"agency", agencyNumber,
		"account_number", domain.FormatNumber(account.Number()),
		"savings", account.Savings(),
		"special", account.Special(),
	)

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, agencyNumber string, number int64) (*domain.Account, error) {
	agency, err := s.agency(ctx, agencyNumber)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}

	account, err := s.accounts.GetByNumber(ctx, agency.ID, number)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", accountNotFound(err))
	}
	return account, nil
}

func (s *AccountService) ListAccounts(ctx context.Context, agencyNumber string) ([]*domain.Account, error) {
	agency, err := s.agency(ctx, agencyNumber)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}

	accounts, err := s.accounts.GetByAgency(ctx, agency.ID)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountService) GetMovements(ctx context.Context, agencyNumber string, number int64) ([]domain.Movement, error) {
	account, err := s.GetAccount(ctx, agencyNumber, number)
	if err != nil {
		return nil, fmt.Errorf("GetMovements: %w", err)
	}
	return account.Movements(), nil
}

func (s *AccountService) SetSpecial(ctx context.Context, agencyNumber string, number int64, special bool) (*domain.Account, error) {
	account, err := s.update(ctx, agencyNumber, number, func(a *domain.Account) error {
		return a.SetSpecial(special)
	})
	if err != nil {
		return nil, fmt.Errorf("SetSpecial: %w", err)
	}

	logging.FromContext(ctx).Info("special flag changed",
		"agency", agencyNumber,
		"account_number", domain.FormatNumber(number),
		"special", special,
	)
	return account, nil
}

func (s *AccountService) SetSavings(ctx context.Context, agencyNumber string, number int64, savings bool) (*domain.Account, error) {
	account, err := s.update(ctx, agencyNumber, number, func(a *domain.Account) error {
		a.SetSavings(savings)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("SetSavings: %w", err)
	}

	logging.FromContext(ctx).Info("savings flag changed",
		"agency", agencyNumber,
		"account_number", domain.FormatNumber(number),
		"savings", savings,
	)
	return account, nil
}

func (s *AccountService) SetOverdraftLimit(ctx context.Context, agencyNumber string, number int64, limit float64) (*domain.Account, error) {
	account, err := s.update(ctx, agencyNumber, number, func(a *domain.Account) error {
		return a.SetOverdraftLimit(limit)
	})
	if err != nil {
		return nil, fmt.Errorf("SetOverdraftLimit: %w", err)
	}

	logging.FromContext(ctx).Info("overdraft limit changed",
		"agency", agencyNumber,
		"account_number", domain.FormatNumber(number),
		"overdraft_limit", limit,
	)
	return account, nil
}

func (s *AccountService) update(ctx context.Context, agencyNumber string, number int64, fn func(*domain.Account) error) (*domain.Account, error) {
	agency, err := s.agency(ctx, agencyNumber)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Update(ctx, agency.ID, number, fn)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrInvalidState) {
			logging.FromContext(ctx).Warn("account change rejected",
				"agency", agencyNumber,
				"account_number", domain.FormatNumber(number),
				"error", err,
			)
		}
		return nil, accountNotFound(err)
	}
	return account, nil
}

func (s *AccountService) agency(ctx context.Context, number string) (*domain.Agency, error) {
	agency, err := s.agencies.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("agency %s: %w", number, domain.ErrAgencyNotFound)
		}
		return nil, err
	}
	return agency, nil
}

func accountNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrAccountNotFound, err)
	}
	return err
}
