package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP is one issued code for a phone number. Records are never deleted;
// IsUsed=true is the terminal marker for both consumed and expired codes.
type OTP struct {
	gorm.Model
	PhoneNumber string    `gorm:"not null;index"` // canonical +91 form
	Code        string    `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"not null"`
	VerifiedAt  *time.Time
	IsUsed      bool `gorm:"default:false"`
}

// SendOTPRequest is the body for /otp_send and /otp_resend.
type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// VerifyOTPRequest is the body for /otp_verify.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

// OTPResponse is the envelope returned by every OTP endpoint.
type OTPResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
