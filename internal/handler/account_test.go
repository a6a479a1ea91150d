package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/account-registry/internal/auth"
	"github.com/josh-kwaku/account-registry/internal/domain"
	"github.com/josh-kwaku/account-registry/internal/repository"
	"github.com/josh-kwaku/account-registry/internal/service"
)

const testAgency = "0001"

func asOperator(agency string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.ContextWithClaims(r.Context(), &auth.Claims{
				OperatorID:   uuid.New(),
				Email:        "gerente@banco.test",
				AgencyNumber: agency,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestMux(t *testing.T, operatorAgency string) *http.ServeMux {
	t.Helper()
	agencies := repository.NewAgencyRepository(
		domain.NewAgency(testAgency, "Matriz"),
		domain.NewAgency("0002", "Centro"),
	)
	svc := service.NewAccountService(repository.NewAccountRepository(), agencies)

	mux := http.NewServeMux()
	NewAccountHandler(svc).Register(mux, asOperator(operatorAgency))
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var resp APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return rr, resp
}

func TestAccountHandler_Open(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "checking account",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `{"number": 12345}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "special account with limit",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `{"number": 99999, "special": true, "overdraft_limit": 0.5}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "number out of range",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `{"number": 100000}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ARGUMENT",
		},
		{
			name:       "limit on regular account",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `{"number": 1, "overdraft_limit": 0.5}`,
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_STATE",
		},
		{
			name:       "missing number",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `{"savings": true}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "invalid JSON",
			path:       "/api/v1/agencies/0001/accounts",
			body:       `not-json`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "agency outside operator scope",
			path:       "/api/v1/agencies/0002/accounts",
			body:       `{"number": 1}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "AGENCY_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestMux(t, testAgency)

			rr, resp := do(t, mux, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
				assert.False(t, resp.Success)
				return
			}
			assert.True(t, resp.Success)
		})
	}
}

func TestAccountHandler_OpenDuplicate(t *testing.T) {
	mux := newTestMux(t, testAgency)

	rr, _ := do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 7}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, resp := do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 7}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", resp.Error.Code)
}

func TestAccountHandler_UnknownAgency(t *testing.T) {
	mux := newTestMux(t, "0404")

	rr, resp := do(t, mux, http.MethodGet, "/api/v1/agencies/0404/accounts", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "AGENCY_NOT_FOUND", resp.Error.Code)
}

func TestAccountHandler_GetAndList(t *testing.T) {
	mux := newTestMux(t, testAgency)
	do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 42, "savings": true}`)
	do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 7}`)

	rr, resp := do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts/42", "")
	require.Equal(t, http.StatusOK, rr.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "00042", data["number"])
	assert.Equal(t, "0001", data["agency"])
	assert.Equal(t, true, data["savings"])
	assert.Equal(t, false, data["special"])
	assert.Equal(t, 0.0, data["overdraft_limit"])

	rr, resp = do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts", "")
	require.Equal(t, http.StatusOK, rr.Code)
	list := resp.Data.([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "00007", list[0].(map[string]any)["number"])

	rr, resp = do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts/8", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", resp.Error.Code)

	rr, resp = do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", resp.Error.Code)
}

func TestAccountHandler_Movements(t *testing.T) {
	mux := newTestMux(t, testAgency)
	do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 1, "special": true}`)

	rr, resp := do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts/1/movements", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{}, resp.Data)
}

func TestAccountHandler_SetOverdraftLimit(t *testing.T) {
	tests := []struct {
		name       string
		special    bool
		body       string
		wantStatus int
		wantCode   string
		wantLimit  float64
	}{
		{name: "special account", special: true, body: `{"overdraft_limit": 0.5}`, wantStatus: http.StatusOK, wantLimit: 0.5},
		{name: "regular account zero", special: false, body: `{"overdraft_limit": 0}`, wantStatus: http.StatusOK},
		{name: "regular account positive", special: false, body: `{"overdraft_limit": 0.5}`, wantStatus: http.StatusConflict, wantCode: "INVALID_STATE"},
		{name: "negative", special: true, body: `{"overdraft_limit": -1}`, wantStatus: http.StatusBadRequest, wantCode: "INVALID_ARGUMENT"},
		{name: "missing field", special: true, body: `{}`, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mux := newTestMux(t, testAgency)
			body, err := json.Marshal(map[string]any{"number": 1, "special": tc.special})
			require.NoError(t, err)
			rr, _ := do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", string(body))
			require.Equal(t, http.StatusCreated, rr.Code)

			rr, resp := do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/overdraft-limit", tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
			}

			_, resp = do(t, mux, http.MethodGet, "/api/v1/agencies/0001/accounts/1", "")
			assert.Equal(t, tc.wantLimit, resp.Data.(map[string]any)["overdraft_limit"])
		})
	}
}

func TestAccountHandler_SetFlags(t *testing.T) {
	mux := newTestMux(t, testAgency)
	do(t, mux, http.MethodPost, "/api/v1/agencies/0001/accounts", `{"number": 1, "special": true, "overdraft_limit": 10}`)

	rr, resp := do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/special", `{"special": false}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "INVALID_STATE", resp.Error.Code)

	rr, _ = do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/overdraft-limit", `{"overdraft_limit": 0}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr, resp = do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/special", `{"special": false}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, resp.Data.(map[string]any)["special"])

	rr, resp = do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/savings", `{"savings": true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, resp.Data.(map[string]any)["savings"])

	rr, resp = do(t, mux, http.MethodPut, "/api/v1/agencies/0001/accounts/1/savings", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestAgencyFromPath_NoClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/agencies/0001/accounts", nil)
	req = req.WithContext(context.Background())
	req.SetPathValue("agency", testAgency)

	_, appErr := agencyFromPath(req)
	assert.Equal(t, ErrMissingToken, appErr)
}
