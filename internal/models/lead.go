package models

import (
	"time"

	"gorm.io/gorm"
)

// Lead statuses tracked locally (the Basic Application API is the source
// of truth; we mirror the latest status for audit).
const (
	LeadStatusCreated = "created"
)

// LoanTypeMapping folds the loan type spellings accepted on the wire into
// the short codes the Basic Application API expects.
var LoanTypeMapping = map[string]string{
	"home_loan":             "HL",
	"home loan":             "HL",
	"Home Loan":             "HL",
	"HL":                    "HL",
	"loan_against_property": "LAP",
	"loan against property": "LAP",
	"Loan Against Property": "LAP",
	"LAP":                   "LAP",
	"lap":                   "LAP",
	"personal_loan":         "PL",
	"business_loan":         "BL",
	"car_loan":              "CL",
	"education_loan":        "EL",
}

// Lead mirrors an application created through the Basic Application API.
type Lead struct {
	gorm.Model
	BasicApplicationID string `gorm:"uniqueIndex;not null"`
	CustomerID         string
	RelationID         string
	FirstName          string `gorm:"not null"`
	LastName           string
	MobileNumber       string `gorm:"not null;index"`
	Email              string
	PANNumber          string
	LoanType           string
	LoanAmount         float64
	LoanTenure         int
	Gender             string
	DateOfBirth        string
	PinCode            string
	Status             string `gorm:"default:created"`
	StatusUpdatedAt    *time.Time
}

// LeadCreateRequest is the body for /lead_create.
type LeadCreateRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	MobileNumber string  `json:"mobile_number"`
	Email        string  `json:"email"`
	PANNumber    string  `json:"pan_number"`
	LoanType     string  `json:"loan_type"`
	LoanAmount   float64 `json:"loan_amount"`
	LoanTenure   int     `json:"loan_tenure"`
	Gender       string  `json:"gender"`
	DateOfBirth  string  `json:"dob"`
	PinCode      string  `json:"pin_code"`
}

// LeadStatusRequest is the body for /lead_status. Either identifier works.
type LeadStatusRequest struct {
	MobileNumber       string `json:"mobile_number"`
	BasicApplicationID string `json:"basic_application_id"`
}

// BookAppointmentRequest is the body for /book_appointment.
type BookAppointmentRequest struct {
	ReferenceID string `json:"reference_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// LeadResponse is the envelope returned by every lead endpoint.
type LeadResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
