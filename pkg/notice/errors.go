package notice

import "errors"

var (
	// ErrEmailRequired is returned when the recipient email is missing
	ErrEmailRequired = errors.New("email is required")

	// ErrInvalidStatus is returned when the decision status is not verified/rejected
	ErrInvalidStatus = errors.New("status must be verified or rejected")

	// ErrMessageRequired is returned when a contact submission has no message
	ErrMessageRequired = errors.New("message is required")

	// ErrDeliveryFailed is returned when the notice email could not be sent
	ErrDeliveryFailed = errors.New("failed to send notification email")
)
