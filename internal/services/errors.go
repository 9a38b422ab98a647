package services

import "errors"

// Client-facing error taxonomy. Handlers translate these into the
// response envelope and HTTP status codes; nothing here is fatal.
var (
	ErrInvalidOTPFormat = errors.New("OTP must be 6 digits")

	// ErrOTPNotFound covers both the missing and the expired case on
	// purpose: callers cannot distinguish the two.
	ErrOTPNotFound = errors.New("OTP not found or expired")

	ErrInvalidOTP = errors.New("invalid OTP")

	ErrDeliveryFailed = errors.New("failed to deliver WhatsApp message")
)
