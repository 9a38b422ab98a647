package services

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
	"github.com/asheemsiwach08/homi-apis/internal/utils"
)

var otpCodeRegex = regexp.MustCompile(`^\d{6}$`)

// OTPSender delivers an OTP code over WhatsApp.
type OTPSender interface {
	SendOTP(phone string, code string) error
}

// OTPService owns the OTP lifecycle: generate, persist, deliver, verify.
// It works against whichever store the startup selection picked.
type OTPService struct {
	store  storage.Store
	sender OTPSender
	ttl    time.Duration
}

// NewOTPService creates an OTP service with the given code TTL.
func NewOTPService(store storage.Store, sender OTPSender, ttl time.Duration) *OTPService {
	return &OTPService{store: store, sender: sender, ttl: ttl}
}

// Send issues a fresh OTP for the phone number and delivers it over
// WhatsApp. The record is persisted before delivery and is kept even when
// delivery fails, so the audit trail stays intact. Returns the canonical
// phone number.
func (s *OTPService) Send(phone string) (string, error) {
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return "", err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}

	otp := &models.OTP{
		PhoneNumber: normalized,
		Code:        code,
		ExpiresAt:   time.Now().Add(s.ttl),
		IsUsed:      false,
	}
	if _, err := s.store.CreateOTP(otp); err != nil {
		return "", err
	}

	if err := s.sender.SendOTP(normalized, code); err != nil {
		return normalized, ErrDeliveryFailed
	}
	return normalized, nil
}

// Resend issues a new code unconditionally. A prior active record is not
// touched; it is shadowed because lookups always resolve to the most
// recent record.
func (s *OTPService) Resend(phone string) (string, error) {
	return s.Send(phone)
}

// Verify checks the submitted code against the active record.
// Missing and expired records are indistinguishable to the caller; an
// expired record is marked used on discovery. A wrong code leaves the
// record untouched so the caller may retry within the TTL.
func (s *OTPService) Verify(phone string, code string) (string, error) {
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return "", err
	}
	if !otpCodeRegex.MatchString(code) {
		return normalized, ErrInvalidOTPFormat
	}

	otp, err := s.store.GetActiveOTP(normalized)
	if err != nil {
		if errors.Is(err, storage.ErrOTPNotFound) {
			return normalized, ErrOTPNotFound
		}
		return normalized, err
	}

	if time.Now().After(otp.ExpiresAt) {
		if err := s.store.MarkOTPUsed(normalized); err != nil {
			return normalized, err
		}
		return normalized, ErrOTPNotFound
	}

	if otp.Code != code {
		return normalized, ErrInvalidOTP
	}

	if err := s.store.MarkOTPUsed(normalized); err != nil {
		return normalized, err
	}
	return normalized, nil
}
