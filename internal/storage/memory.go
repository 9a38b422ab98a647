package storage

import (
	"sync"
	"time"

	"github.com/asheemsiwach08/homi-apis/internal/models"
)

// MemoryStore is the in-process fallback used when Postgres is not
// reachable at startup. Data does not survive a restart - an accepted
// limitation for short-lived OTPs. One mutex serializes every
// read-modify-write sequence; it is never held across I/O.
type MemoryStore struct {
	mu sync.Mutex

	// OTP history per phone number, oldest first. Records are never
	// removed, matching the audit behavior of the database store.
	otps     map[string][]*models.OTP
	leads    map[string]*models.Lead // keyed by basic application ID
	messages []*models.WhatsAppMessage

	otpCounter     uint
	leadCounter    uint
	messageCounter uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		otps:  make(map[string][]*models.OTP),
		leads: make(map[string]*models.Lead),
	}
}

// OTP operations

func (m *MemoryStore) CreateOTP(otp *models.OTP) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.otpCounter++
	otp.ID = m.otpCounter
	otp.CreatedAt = time.Now()
	otp.UpdatedAt = otp.CreatedAt

	m.otps[otp.PhoneNumber] = append(m.otps[otp.PhoneNumber], otp)
	return otp, nil
}

func (m *MemoryStore) GetActiveOTP(phone string) (*models.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.otps[phone]
	for i := len(records) - 1; i >= 0; i-- {
		if !records[i].IsUsed {
			rec := *records[i]
			return &rec, nil
		}
	}
	return nil, ErrOTPNotFound
}

func (m *MemoryStore) MarkOTPUsed(phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, record := range m.otps[phone] {
		if !record.IsUsed {
			record.IsUsed = true
			record.VerifiedAt = &now
			record.UpdatedAt = now
		}
	}
	return nil
}

// Lead operations

func (m *MemoryStore) CreateLead(lead *models.Lead) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.leadCounter++
	lead.ID = m.leadCounter
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt

	m.leads[lead.BasicApplicationID] = lead
	return lead, nil
}

func (m *MemoryStore) GetLeadByBasicApplicationID(basicAppID string) (*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, exists := m.leads[basicAppID]
	if !exists {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (m *MemoryStore) GetLeadsByMobile(mobile string) ([]*models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var leads []*models.Lead
	for _, lead := range m.leads {
		if lead.MobileNumber == mobile {
			leads = append(leads, lead)
		}
	}
	// Most recent first, matching the database store's ordering.
	for i := 0; i < len(leads); i++ {
		for j := i + 1; j < len(leads); j++ {
			if leads[j].CreatedAt.After(leads[i].CreatedAt) {
				leads[i], leads[j] = leads[j], leads[i]
			}
		}
	}
	return leads, nil
}

func (m *MemoryStore) UpdateLeadStatus(basicAppID string, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, exists := m.leads[basicAppID]
	if !exists {
		return ErrLeadNotFound
	}

	now := time.Now()
	lead.Status = status
	lead.StatusUpdatedAt = &now
	lead.UpdatedAt = now
	return nil
}

// WhatsApp message operations

func (m *MemoryStore) SaveWhatsAppMessage(msg *models.WhatsAppMessage) (*models.WhatsAppMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messageCounter++
	msg.ID = m.messageCounter
	msg.CreatedAt = time.Now()
	msg.UpdatedAt = msg.CreatedAt

	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *MemoryStore) GetWhatsAppMessages(mobile string, direction string, limit int) ([]*models.WhatsAppMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var messages []*models.WhatsAppMessage
	for i := len(m.messages) - 1; i >= 0 && len(messages) < limit; i-- {
		msg := m.messages[i]
		if mobile != "" && msg.MobileNumber != mobile {
			continue
		}
		if direction != "" && msg.Direction != direction {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
