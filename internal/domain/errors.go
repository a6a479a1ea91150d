package domain

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrNotFound        = errors.New("not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists in this agency")
	ErrAgencyNotFound  = errors.New("agency not found")
	ErrInvalidRequest  = errors.New("invalid request")
)
