package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/account-registry/internal/domain"
	"github.com/josh-kwaku/account-registry/internal/logging"
	"github.com/josh-kwaku/account-registry/internal/service"
)

type accountService interface {
	OpenAccount(ctx context.Context, agencyNumber string, p service.OpenAccountParams) (*domain.Account, error)
	GetAccount(ctx context.Context, agencyNumber string, number int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, agencyNumber string) ([]*domain.Account, error)
	GetMovements(ctx context.Context, agencyNumber string, number int64) ([]domain.Movement, error)
	SetSpecial(ctx context.Context, agencyNumber string, number int64, special bool) (*domain.Account, error)
	SetSavings(ctx context.Context, agencyNumber string, number int64, savings bool) (*domain.Account, error)
	SetOverdraftLimit(ctx context.Context, agencyNumber string, number int64, limit float64) (*domain.Account, error)
}

type AccountHandler struct {
	accounts accountService
}

func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type openAccountRequest struct {
	Number         *int64  `json:"number"`
	Savings        bool    `json:"savings"`
	Special        bool    `json:"special"`
	OverdraftLimit float64 `json:"overdraft_limit"`
}

func (r openAccountRequest) Validate() []FieldError {
	var errs []FieldError
	if r.Number == nil {
		errs = append(errs, FieldError{Field: "number", Message: "required"})
	}
	return errs
}

type setSpecialRequest struct {
	Special *bool `json:"special"`
}

type setSavingsRequest struct {
	Savings *bool `json:"savings"`
}

type setOverdraftLimitRequest struct {
	OverdraftLimit *float64 `json:"overdraft_limit"`
}

type accountDTO struct {
	Agency         string  `json:"agency"`
	Number         string  `json:"number"`
	Savings        bool    `json:"savings"`
	Special        bool    `json:"special"`
	OverdraftLimit float64 `json:"overdraft_limit"`
	Balance        float64 `json:"balance"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	dto := accountDTO{
		Number:         domain.FormatNumber(a.Number()),
		Savings:        a.Savings(),
		Special:        a.Special(),
		OverdraftLimit: a.OverdraftLimit(),
		Balance:        a.Balance(),
	}
	if a.Agency() != nil {
		dto.Agency = a.Agency().Number
	}
	return dto
}

type movementDTO struct {
	ID          uuid.UUID       `json:"id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toMovementDTOs(movements []domain.Movement) []movementDTO {
	dtos := make([]movementDTO, len(movements))
	for i, m := range movements {
		dtos[i] = movementDTO{
			ID:          m.ID,
			Kind:        string(m.Kind),
			Amount:      m.Amount,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		}
	}
	return dtos
}

func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	agency, appErr := agencyFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.OpenAccount(r.Context(), agency, service.OpenAccountParams{
		Number:         *req.Number,
		Savings:        req.Savings,
		Special:        req.Special,
		OverdraftLimit: req.OverdraftLimit,
	})
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to open account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	agency, appErr := agencyFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), agency)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	agency, number, appErr := accountFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), agency, number)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Movements(w http.ResponseWriter, r *http.Request) {
	agency, number, appErr := accountFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	movements, err := h.accounts.GetMovements(r.Context(), agency, number)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toMovementDTOs(movements))
}

func (h *AccountHandler) SetSpecial(w http.ResponseWriter, r *http.Request) {
	agency, number, appErr := accountFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req setSpecialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.Special == nil {
		RespondValidationError(w, []FieldError{{Field: "special", Message: "required"}})
		return
	}

	account, err := h.accounts.SetSpecial(r.Context(), agency, number, *req.Special)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) SetSavings(w http.ResponseWriter, r *http.Request) {
	agency, number, appErr := accountFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req setSavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.Savings == nil {
		RespondValidationError(w, []FieldError{{Field: "savings", Message: "required"}})
		return
	}

	account, err := h.accounts.SetSavings(r.Context(), agency, number, *req.Savings)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) SetOverdraftLimit(w http.ResponseWriter, r *http.Request) {
	agency, number, appErr := accountFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req setOverdraftLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}
	if req.OverdraftLimit == nil {
		RespondValidationError(w, []FieldError{{Field: "overdraft_limit", Message: "required"}})
		return
	}

	account, err := h.accounts.SetOverdraftLimit(r.Context(), agency, number, *req.OverdraftLimit)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

// Register mounts the account routes on mux, each wrapped by protect.
func (h *AccountHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	route := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, protect(fn))
	}

	route("POST /api/v1/agencies/{agency}/accounts", h.Open)
	route("GET /api/v1/agencies/{agency}/accounts", h.List)
	route("GET /api/v1/agencies/{agency}/accounts/{number}", h.Get)
	route("GET /api/v1/agencies/{agency}/accounts/{number}/movements", h.Movements)
	route("PUT /api/v1/agencies/{agency}/accounts/{number}/special", h.SetSpecial)
	route("PUT /api/v1/agencies/{agency}/accounts/{number}/savings", h.SetSavings)
	route("PUT /api/v1/agencies/{agency}/accounts/{number}/overdraft-limit", h.SetOverdraftLimit)
}
