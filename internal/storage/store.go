package storage

import (
	"errors"

	"github.com/asheemsiwach08/homi-apis/internal/models"
)

// Lookup errors shared by both backends.
var (
	ErrOTPNotFound  = errors.New("otp not found")
	ErrLeadNotFound = errors.New("lead not found")
)

// Store defines the interface for storage operations. Both the Postgres
// store and the in-memory fallback implement it, so call sites never know
// which backend is active.
type Store interface {
	// OTP operations. GetActiveOTP returns the most recent unused record
	// for the phone even when it has expired; the TTL check belongs to the
	// caller (lazy expiry, no background sweep).
	CreateOTP(otp *models.OTP) (*models.OTP, error)
	GetActiveOTP(phone string) (*models.OTP, error)
	MarkOTPUsed(phone string) error

	// Lead operations
	CreateLead(lead *models.Lead) (*models.Lead, error)
	GetLeadByBasicApplicationID(basicAppID string) (*models.Lead, error)
	GetLeadsByMobile(mobile string) ([]*models.Lead, error)
	UpdateLeadStatus(basicAppID string, status string) error

	// WhatsApp message operations
	SaveWhatsAppMessage(msg *models.WhatsAppMessage) (*models.WhatsAppMessage, error)
	GetWhatsAppMessages(mobile string, direction string, limit int) ([]*models.WhatsAppMessage, error)
}
