package models

import "gorm.io/gorm"

// Message directions for WhatsAppMessage.
const (
	MessageDirectionInbound  = "inbound"
	MessageDirectionOutbound = "outbound"
)

// WhatsAppMessage is one relayed WhatsApp message, kept for audit and for
// the /whatsapp/messages listing endpoint.
type WhatsAppMessage struct {
	gorm.Model
	MessageSID   string `gorm:"index"`
	MobileNumber string `gorm:"not null;index"`
	Direction    string `gorm:"not null"`
	Body         string
}
