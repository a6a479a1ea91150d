package middleware

import (
	"net/http"
	"strings"

	"github.com/josh-kwaku/account-registry/internal/auth"
	"github.com/josh-kwaku/account-registry/internal/handler"
	"github.com/josh-kwaku/account-registry/internal/logging"
)

// Auth validates the bearer token and tags the request logger with the
// operator and agency it carries.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := auth.ValidateToken(token, secret)
			if err != nil {
				logging.FromContext(r.Context()).Warn("token rejected", "error", err)
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			logger := logging.FromContext(r.Context()).With(
				"operator_id", claims.OperatorID,
				"agency", claims.AgencyNumber,
			)
			ctx := auth.ContextWithClaims(r.Context(), claims)
			ctx = logging.WithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
