package handler

import (
	"net/http"
	"strconv"

	"github.com/josh-kwaku/account-registry/internal/auth"
)

// agencyFromPath returns the {agency} path value when it matches the agency
// the operator's token is scoped to. A mismatch looks like a missing agency.
func agencyFromPath(r *http.Request) (string, *AppError) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", ErrMissingToken
	}

	agency := r.PathValue("agency")
	if agency == "" || agency != claims.AgencyNumber {
		return "", ErrAgencyNotFound
	}
	return agency, nil
}

func accountFromPath(r *http.Request) (string, int64, *AppError) {
	agency, appErr := agencyFromPath(r)
	if appErr != nil {
		return "", 0, appErr
	}

	number, err := strconv.ParseInt(r.PathValue("number"), 10, 64)
	if err != nil {
		return "", 0, ErrAccountNotFound
	}
	return agency, number, nil
}
