package otp

import "errors"

var (
	// ErrEmailRequired is returned when the email address is missing
	ErrEmailRequired = errors.New("email is required")

	// ErrCodeRequired is returned when the submitted code is missing
	ErrCodeRequired = errors.New("verification code is required")

	// ErrRecordNotFound is returned when no live verification record exists for the email
	ErrRecordNotFound = errors.New("no verification code found for this email")

	// ErrCodeExpired is returned when the verification code has passed its expiry window
	ErrCodeExpired = errors.New("verification code has expired")

	// ErrTooManyAttempts is returned once the failed-attempt ceiling has been reached
	ErrTooManyAttempts = errors.New("too many failed attempts, please request a new code")

	// ErrInvalidCode is returned when the submitted code does not match
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrDeliveryFailed is returned when the verification email could not be sent
	ErrDeliveryFailed = errors.New("failed to send verification email")
)
