package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/josh-kwaku/account-registry/internal/auth"
	"github.com/josh-kwaku/account-registry/internal/domain"
)

const testJWTSecret = "test-jwt-secret"

type mockOperatorReader struct {
	op  *domain.Operator
	err error
}

func (m *mockOperatorReader) GetByEmail(_ context.Context, email string) (*domain.Operator, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.op == nil || m.op.Email != email {
		return nil, domain.ErrNotFound
	}
	return m.op, nil
}

func TestAuthHandler_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	op := &domain.Operator{
		ID:           uuid.New(),
		Email:        "gerente@banco.test",
		Name:         "Gerente",
		PasswordHash: string(hash),
		AgencyNumber: "0001",
	}

	tests := []struct {
		name       string
		body       string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "valid credentials",
			body:       `{"email": "gerente@banco.test", "password": "s3cret"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"email": "gerente@banco.test", "password": "nope"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "unknown operator",
			body:       `{"email": "caixa@banco.test", "password": "s3cret"}`,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "invalid JSON",
			body:       `not-json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "repository failure",
			body:       `{"email": "gerente@banco.test", "password": "s3cret"}`,
			repoErr:    errors.New("directory unavailable"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&mockOperatorReader{op: op, err: tc.repoErr}, testJWTSecret, time.Hour)
			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/v1/auth/login", h.Login)

			rr, resp := do(t, mux, http.MethodPost, "/api/v1/auth/login", tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				return
			}

			data := resp.Data.(map[string]any)
			token, ok := data["token"].(string)
			require.True(t, ok)

			claims, err := auth.ValidateToken(token, testJWTSecret)
			require.NoError(t, err)
			assert.Equal(t, op.ID, claims.OperatorID)
			assert.Equal(t, "0001", claims.AgencyNumber)
		})
	}
}
