package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asheemsiwach08/homi-apis/internal/config"
	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

type fakeNotifier struct {
	confirmations []string
	statusUpdates []string
}

func (f *fakeNotifier) SendLeadCreationConfirmation(phone, name, basicAppID string) error {
	f.confirmations = append(f.confirmations, basicAppID)
	return nil
}

func (f *fakeNotifier) SendLeadStatusUpdate(phone, name, status string) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func validLeadRequest() *models.LeadCreateRequest {
	return &models.LeadCreateRequest{
		FirstName:    "Asha",
		LastName:     "Verma",
		MobileNumber: "7888888888",
		Email:        "asha@example.com",
		PANNumber:    "ABCDE1234F",
		LoanType:     "home_loan",
		LoanAmount:   2500000,
		LoanTenure:   240,
		PinCode:      "110001",
	}
}

func TestValidateCreateRequest(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.LeadCreateRequest)
		want   error
	}{
		{"valid", func(r *models.LeadCreateRequest) {}, nil},
		{"bad loan type", func(r *models.LeadCreateRequest) { r.LoanType = "payday" }, ErrInvalidLoanType},
		{"zero amount", func(r *models.LeadCreateRequest) { r.LoanAmount = 0 }, ErrInvalidLoanAmount},
		{"zero tenure", func(r *models.LeadCreateRequest) { r.LoanTenure = 0 }, ErrInvalidLoanTenure},
		{"bad pan", func(r *models.LeadCreateRequest) { r.PANNumber = "1234ABCDE" }, ErrInvalidPAN},
		{"short mobile", func(r *models.LeadCreateRequest) { r.MobileNumber = "12345" }, ErrInvalidMobile},
		{"bad pin", func(r *models.LeadCreateRequest) { r.PinCode = "1100" }, ErrInvalidPinCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validLeadRequest()
			tc.mutate(req)
			err := ValidateCreateRequest(req)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func newLeadTestService(t *testing.T, handler http.HandlerFunc) (*LeadService, *storage.MemoryStore, *fakeNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewBasicApplicationClient(&config.Config{
		BasicAPIURL:    server.URL,
		BasicAPIUserID: "user",
		BasicAPIKey:    "key",
	})
	store := storage.NewMemoryStore()
	notifier := &fakeNotifier{}
	return NewLeadService(store, client, notifier), store, notifier
}

func TestLeadCreate(t *testing.T) {
	svc, store, notifier := newLeadTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lead/create", r.URL.Path)
		assert.Equal(t, "user", r.Header.Get("userId"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "HL", payload["loanType"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"basicAppId": "B002BJF",
				"id":         "rel-1",
				"primaryBorrower": map[string]any{
					"customerId": "234",
				},
			},
		})
	})

	lead, err := svc.Create(validLeadRequest())
	require.NoError(t, err)
	assert.Equal(t, "B002BJF", lead.BasicApplicationID)
	assert.Equal(t, "234", lead.CustomerID)

	stored, err := store.GetLeadByBasicApplicationID("B002BJF")
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusCreated, stored.Status)

	assert.Equal(t, []string{"B002BJF"}, notifier.confirmations)
}

func TestLeadCreateValidationShortCircuits(t *testing.T) {
	svc, _, _ := newLeadTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("API must not be called for invalid requests")
	})

	req := validLeadRequest()
	req.PANNumber = "bad"
	_, err := svc.Create(req)
	assert.ErrorIs(t, err, ErrInvalidPAN)
}

func TestLeadStatusMirrorsAndNotifies(t *testing.T) {
	svc, store, notifier := newLeadTestService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lead/create":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{"basicAppId": "B002BJF", "id": "rel-1"},
			})
		case "/lead/status":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{"basicAppId": "B002BJF", "latestStatus": "Sanctioned"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	_, err := svc.Create(validLeadRequest())
	require.NoError(t, err)

	status, err := svc.Status(&models.LeadStatusRequest{MobileNumber: "7888888888"})
	require.NoError(t, err)
	assert.Equal(t, "Sanctioned", status)

	lead, err := store.GetLeadByBasicApplicationID("B002BJF")
	require.NoError(t, err)
	assert.Equal(t, "Sanctioned", lead.Status)

	assert.Equal(t, []string{"Sanctioned"}, notifier.statusUpdates)
}

func TestLeadStatusRequiresIdentifier(t *testing.T) {
	svc, _, _ := newLeadTestService(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := svc.Status(&models.LeadStatusRequest{})
	assert.ErrorIs(t, err, ErrMissingIdentifier)
}
