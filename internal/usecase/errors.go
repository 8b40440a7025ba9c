package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyItems          = errors.New("items list cannot be empty")
	ErrInvalidItem         = errors.New("invalid item")
	ErrInvalidOrderID      = errors.New("invalid order ID")
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrMissingTotal        = errors.New("total price missing")
	ErrMissingGatewayRefs  = errors.New("missing payment gateway fields")
	ErrInvalidSignature    = errors.New("invalid payment signature")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrMissingTrackingInfo = errors.New("tracking details missing")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotVerified         = errors.New("email not verified")
	ErrUserBlocked         = errors.New("user account is blocked")
	ErrInvalidOTP          = errors.New("invalid OTP")
	ErrOTPExpired          = errors.New("OTP expired")
	ErrOTPThrottled        = errors.New("too many OTP requests")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// OutOfStockError names the product and the quantities involved so the
// caller's payload can say exactly what could not be fulfilled.
type OutOfStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("only %d left for %s", e.Available, e.Name)
}
