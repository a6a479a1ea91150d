package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identifies an operator and the agency whose accounts they manage.
type Claims struct {
	OperatorID   uuid.UUID
	Email        string
	AgencyNumber string
}

type tokenClaims struct {
	jwt.RegisteredClaims
	OperatorID string `json:"operator_id"`
	Email      string `json:"email"`
	Agency     string `json:"agency"`
}

func GenerateToken(c Claims, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.OperatorID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		OperatorID: c.OperatorID.String(),
		Email:      c.Email,
		Agency:     c.AgencyNumber,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, nil
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("ValidateToken: invalid token claims")
	}

	operatorID, err := uuid.Parse(tc.OperatorID)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: invalid operator_id in token: %w", err)
	}
	if tc.Agency == "" {
		return nil, fmt.Errorf("ValidateToken: token has no agency")
	}

	return &Claims{
		OperatorID:   operatorID,
		Email:        tc.Email,
		AgencyNumber: tc.Agency,
	}, nil
}
