package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/asheemsiwach08/homi-apis/internal/config"
	"github.com/asheemsiwach08/homi-apis/internal/models"
)

// BasicApplicationClient talks to the third-party Basic Application API
// that owns loan applications.
type BasicApplicationClient struct {
	baseURL    string
	userID     string
	apiKey     string
	httpClient *http.Client
}

// NewBasicApplicationClient creates a client for the Basic Application API.
func NewBasicApplicationClient(cfg *config.Config) *BasicApplicationClient {
	return &BasicApplicationClient{
		baseURL: cfg.BasicAPIURL,
		userID:  cfg.BasicAPIUserID,
		apiKey:  cfg.BasicAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BasicAppResult is the interesting part of a Basic Application response.
type BasicAppResult struct {
	BasicAppID      string `json:"basicAppId"`
	ID              string `json:"id"`
	LatestStatus    string `json:"latestStatus"`
	PrimaryBorrower struct {
		CustomerID string `json:"customerId"`
	} `json:"primaryBorrower"`
}

type basicAppResponse struct {
	Result BasicAppResult `json:"result"`
}

// CreateLead submits a new application and returns its identifiers.
func (c *BasicApplicationClient) CreateLead(req *models.LeadCreateRequest) (*BasicAppResult, error) {
	loanType, ok := models.LoanTypeMapping[req.LoanType]
	if !ok {
		loanType = "HL"
	}

	payload := map[string]any{
		"id":                 uuid.New().String(),
		"firstName":          req.FirstName,
		"lastName":           req.LastName,
		"mobile":             req.MobileNumber,
		"email":              req.Email,
		"pan":                req.PANNumber,
		"gender":             req.Gender,
		"dateOfBirth":        req.DateOfBirth,
		"loanType":           loanType,
		"loanAmountReq":      int64(req.LoanAmount),
		"loanTenure":         req.LoanTenure,
		"pincode":            req.PinCode,
		"annualIncome":       0,
		"isLeadPrefilled":    true,
		"includeCreditScore": true,
	}

	var resp basicAppResponse
	if err := c.post("/lead/create", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Result.BasicAppID == "" {
		return nil, fmt.Errorf("basic application ID missing in API response")
	}
	return &resp.Result, nil
}

// GetLeadStatus fetches the latest status by mobile number or basic
// application ID; at least one must be set.
func (c *BasicApplicationClient) GetLeadStatus(mobile string, basicAppID string) (*BasicAppResult, error) {
	payload := map[string]any{}
	if mobile != "" {
		payload["mobile"] = mobile
	}
	if basicAppID != "" {
		payload["basicAppId"] = basicAppID
	}

	var resp basicAppResponse
	if err := c.post("/lead/status", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// BookAppointment schedules an appointment for an existing application.
func (c *BasicApplicationClient) BookAppointment(referenceID string, date string, timeSlot string) error {
	payload := map[string]any{
		"referenceId": referenceID,
		"date":        date,
		"time":        timeSlot,
	}
	return c.post("/appointment/book", payload, &basicAppResponse{})
}

func (c *BasicApplicationClient) post(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("userId", c.userID)
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("basic application API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("basic application API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
