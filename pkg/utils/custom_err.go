package utils

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrFixedAlertNotFound  = errors.New("fixed alert not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrTokenNotFound       = errors.New("token not found")
	ErrTokenExpired        = errors.New("token expired")
	ErrWhatsappNotFound    = errors.New("whatsapp config not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrPlateAlreadyExists  = errors.New("plate already registered")
	ErrAlreadyLinked       = errors.New("user already linked to vehicle")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrForbidden           = errors.New("insufficient permissions")
	ErrInsufficientCredits = errors.New("insufficient credit balance")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDatabaseError       = errors.New("database error")
	ErrPaymentFailed       = errors.New("payment failed")
)
