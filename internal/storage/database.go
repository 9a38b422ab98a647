package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/asheemsiwach08/homi-apis/internal/models"
)

// DatabaseStore persists everything in Postgres through GORM.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore wraps an established GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// OTP operations

func (s *DatabaseStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	if err := s.db.Create(otp).Error; err != nil {
		return nil, fmt.Errorf("failed to create OTP record: %w", err)
	}
	return otp, nil
}

// GetActiveOTP returns the most recently created unused record for the
// phone. Expired records are returned as-is; expiry is the caller's check.
func (s *DatabaseStore) GetActiveOTP(phone string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.
		Where("phone_number = ? AND is_used = ?", phone, false).
		Order("created_at DESC").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query OTP record: %w", err)
	}
	return &otp, nil
}

func (s *DatabaseStore) MarkOTPUsed(phone string) error {
	now := time.Now()
	err := s.db.Model(&models.OTP{}).
		Where("phone_number = ? AND is_used = ?", phone, false).
		Updates(map[string]any{"is_used": true, "verified_at": &now}).Error
	if err != nil {
		return fmt.Errorf("failed to mark OTP as used: %w", err)
	}
	return nil
}

// Lead operations

func (s *DatabaseStore) CreateLead(lead *models.Lead) (*models.Lead, error) {
	if err := s.db.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return lead, nil
}

func (s *DatabaseStore) GetLeadByBasicApplicationID(basicAppID string) (*models.Lead, error) {
	var lead models.Lead
	err := s.db.Where("basic_application_id = ?", basicAppID).First(&lead).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}
	return &lead, nil
}

func (s *DatabaseStore) GetLeadsByMobile(mobile string) ([]*models.Lead, error) {
	var leads []*models.Lead
	err := s.db.
		Where("mobile_number = ?", mobile).
		Order("created_at DESC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	return leads, nil
}

func (s *DatabaseStore) UpdateLeadStatus(basicAppID string, status string) error {
	now := time.Now()
	result := s.db.Model(&models.Lead{}).
		Where("basic_application_id = ?", basicAppID).
		Updates(map[string]any{"status": status, "status_updated_at": &now})
	if result.Error != nil {
		return fmt.Errorf("failed to update lead status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// WhatsApp message operations

func (s *DatabaseStore) SaveWhatsAppMessage(msg *models.WhatsAppMessage) (*models.WhatsAppMessage, error) {
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to save WhatsApp message: %w", err)
	}
	return msg, nil
}

func (s *DatabaseStore) GetWhatsAppMessages(mobile string, direction string, limit int) ([]*models.WhatsAppMessage, error) {
	query := s.db.Model(&models.WhatsAppMessage{})
	if mobile != "" {
		query = query.Where("mobile_number = ?", mobile)
	}
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}

	var messages []*models.WhatsAppMessage
	err := query.Order("created_at DESC").Limit(limit).Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query WhatsApp messages: %w", err)
	}
	return messages, nil
}
