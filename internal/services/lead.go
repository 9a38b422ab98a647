package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
	"github.com/asheemsiwach08/homi-apis/internal/utils"
)

var (
	panRegex    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)
	pinRegex    = regexp.MustCompile(`^[0-9]{6}$`)
)

// Validation errors for lead creation.
var (
	ErrInvalidPAN        = errors.New("PAN number must be in format: ABCDE1234F")
	ErrInvalidMobile     = errors.New("mobile number must be 10 digits")
	ErrInvalidPinCode    = errors.New("PIN code must be 6 digits")
	ErrInvalidLoanAmount = errors.New("loan amount must be greater than 0")
	ErrInvalidLoanTenure = errors.New("loan tenure must be greater than 0")
	ErrInvalidLoanType   = errors.New("invalid loan type")
	ErrMissingIdentifier = errors.New("either mobile number or basic application ID must be provided")
)

// LeadNotifier sends lead-related WhatsApp notifications.
type LeadNotifier interface {
	SendLeadCreationConfirmation(phone string, customerName string, basicAppID string) error
	SendLeadStatusUpdate(phone string, customerName string, status string) error
}

// LeadService creates leads through the Basic Application API, mirrors
// them in storage and notifies customers over WhatsApp.
type LeadService struct {
	store    storage.Store
	client   *BasicApplicationClient
	notifier LeadNotifier
}

// NewLeadService wires the lead pipeline together.
func NewLeadService(store storage.Store, client *BasicApplicationClient, notifier LeadNotifier) *LeadService {
	return &LeadService{store: store, client: client, notifier: notifier}
}

// ValidateCreateRequest checks every field before the API call.
func ValidateCreateRequest(req *models.LeadCreateRequest) error {
	if _, ok := models.LoanTypeMapping[req.LoanType]; !ok {
		return ErrInvalidLoanType
	}
	if req.LoanAmount <= 0 {
		return ErrInvalidLoanAmount
	}
	if req.LoanTenure <= 0 {
		return ErrInvalidLoanTenure
	}
	if !panRegex.MatchString(req.PANNumber) {
		return ErrInvalidPAN
	}
	if !mobileRegex.MatchString(req.MobileNumber) {
		return ErrInvalidMobile
	}
	if !pinRegex.MatchString(req.PinCode) {
		return ErrInvalidPinCode
	}
	return nil
}

// Create validates the request, submits it to the Basic Application API,
// stores the resulting lead and sends a WhatsApp confirmation. The
// confirmation is best-effort: a delivery failure does not fail creation.
func (s *LeadService) Create(req *models.LeadCreateRequest) (*models.Lead, error) {
	if err := ValidateCreateRequest(req); err != nil {
		return nil, err
	}

	result, err := s.client.CreateLead(req)
	if err != nil {
		return nil, err
	}

	lead := &models.Lead{
		BasicApplicationID: result.BasicAppID,
		CustomerID:         result.PrimaryBorrower.CustomerID,
		RelationID:         result.ID,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		MobileNumber:       req.MobileNumber,
		Email:              req.Email,
		PANNumber:          req.PANNumber,
		LoanType:           req.LoanType,
		LoanAmount:         req.LoanAmount,
		LoanTenure:         req.LoanTenure,
		Gender:             req.Gender,
		DateOfBirth:        req.DateOfBirth,
		PinCode:            req.PinCode,
		Status:             models.LeadStatusCreated,
	}
	if _, err := s.store.CreateLead(lead); err != nil {
		return nil, err
	}

	if phone, err := utils.NormalizePhoneNumber(req.MobileNumber); err == nil {
		name := fmt.Sprintf("%s %s", req.FirstName, req.LastName)
		if err := s.notifier.SendLeadCreationConfirmation(phone, name, result.BasicAppID); err != nil {
			log.Printf("Failed to send lead creation confirmation for %s: %v", result.BasicAppID, err)
		}
	}

	return lead, nil
}

// Status resolves the latest status through the Basic Application API,
// mirrors it in storage and notifies the customer. Either identifier may
// be used.
func (s *LeadService) Status(req *models.LeadStatusRequest) (string, error) {
	if req.MobileNumber == "" && req.BasicApplicationID == "" {
		return "", ErrMissingIdentifier
	}
	if req.MobileNumber != "" && !mobileRegex.MatchString(req.MobileNumber) {
		return "", ErrInvalidMobile
	}

	result, err := s.client.GetLeadStatus(req.MobileNumber, req.BasicApplicationID)
	if err != nil {
		return "", err
	}
	status := result.LatestStatus
	if status == "" {
		return "", storage.ErrLeadNotFound
	}

	// Mirror the status locally; a stale mirror is not worth failing the
	// lookup over.
	basicAppID := req.BasicApplicationID
	if basicAppID == "" {
		if leads, err := s.store.GetLeadsByMobile(req.MobileNumber); err == nil && len(leads) > 0 {
			basicAppID = leads[0].BasicApplicationID
		}
	}
	if basicAppID != "" {
		if err := s.store.UpdateLeadStatus(basicAppID, status); err != nil {
			log.Printf("Failed to mirror lead status for %s: %v", basicAppID, err)
		}
	}

	s.notifyStatus(req, basicAppID, status)
	return status, nil
}

func (s *LeadService) notifyStatus(req *models.LeadStatusRequest, basicAppID string, status string) {
	mobile := req.MobileNumber
	name := "Customer"
	if basicAppID != "" {
		if lead, err := s.store.GetLeadByBasicApplicationID(basicAppID); err == nil {
			if mobile == "" {
				mobile = lead.MobileNumber
			}
			name = fmt.Sprintf("%s %s", lead.FirstName, lead.LastName)
		}
	}
	if mobile == "" {
		return
	}

	phone, err := utils.NormalizePhoneNumber(mobile)
	if err != nil {
		return
	}
	if err := s.notifier.SendLeadStatusUpdate(phone, name, status); err != nil {
		log.Printf("Failed to send lead status update to %s: %v", phone, err)
	}
}

// BookAppointment forwards an appointment booking to the Basic
// Application API.
func (s *LeadService) BookAppointment(req *models.BookAppointmentRequest) error {
	if req.ReferenceID == "" {
		return errors.New("reference ID is required")
	}
	if req.Date == "" || req.Time == "" {
		return errors.New("date and time are required")
	}
	return s.client.BookAppointment(req.ReferenceID, req.Date, req.Time)
}
