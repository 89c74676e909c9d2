package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidLanguage = errors.New("invalid language code")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidActivity = errors.New("invalid activity")
)
