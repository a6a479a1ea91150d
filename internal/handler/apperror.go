package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidArgument = &AppError{http.StatusBadRequest, "INVALID_ARGUMENT", "Value is outside its allowed range"}
	ErrInvalidState    = &AppError{http.StatusConflict, "INVALID_STATE", "Change conflicts with the current account state"}
	ErrAccountNotFound = &AppError{http.StatusNotFound, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrAgencyNotFound  = &AppError{http.StatusNotFound, "AGENCY_NOT_FOUND", "Agency not found"}
	ErrAccountExists   = &AppError{http.StatusConflict, "ACCOUNT_ALREADY_EXISTS", "Account number already in use at this agency"}
)
