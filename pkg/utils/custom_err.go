package utils

import "errors"

var (
	ErrDatabaseError      = errors.New("database error")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrPlanNotFound       = errors.New("membership plan not found")
	ErrInvalidPlanInput   = errors.New("invalid membership plan input")
	ErrPlanNotPurchasable = errors.New("membership plan cannot be purchased")

	ErrPaymentProvider     = errors.New("payment provider error")
	ErrPaymentNotVerified  = errors.New("payment not verified")
	ErrMissingMetadata     = errors.New("missing checkout metadata")
	ErrInvalidPlanType     = errors.New("invalid plan type")
	ErrSessionUserMismatch = errors.New("checkout session belongs to another user")

	ErrInvalidDayCount  = errors.New("invalid day count")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrEndDateInFuture  = errors.New("end date cannot be in the future")
)
