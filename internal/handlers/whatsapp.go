package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/services"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

// MessageSender sends plain WhatsApp text replies.
type MessageSender interface {
	SendMessage(phone string, body string) error
}

// WhatsAppHandler relays incoming WhatsApp messages: every message is
// persisted, status-check requests get a live status reply, anything else
// gets a short hint.
type WhatsAppHandler struct {
	store       storage.Store
	sender      MessageSender
	leadService *services.LeadService
}

// NewWhatsAppHandler creates a new WhatsApp webhook handler.
func NewWhatsAppHandler(store storage.Store, sender MessageSender, leadService *services.LeadService) *WhatsAppHandler {
	return &WhatsAppHandler{store: store, sender: sender, leadService: leadService}
}

// TwilioWebhookPayload is the form payload Twilio posts for an incoming
// WhatsApp message.
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // whatsapp:+919876543210
	To         string `form:"To"`
	Body       string `form:"Body"`
	NumMedia   string `form:"NumMedia"`
}

var statusKeywords = []string{
	"check my application status",
	"application status",
	"loan status",
	"status check",
	"track application",
	"check status",
	"my application",
	"loan details",
}

func isStatusCheckRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range statusKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// HandleWebhook processes an incoming WhatsApp message. The webhook is
// always acked with 200 so the provider does not retry.
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	if payload.Body == "" || payload.From == "" {
		// Status callbacks and media-only events need no reply.
		return c.SendStatus(fiber.StatusOK)
	}

	from := strings.TrimPrefix(payload.From, "whatsapp:")
	log.Printf("WhatsApp message received from %s", from)

	if _, err := h.store.SaveWhatsAppMessage(&models.WhatsAppMessage{
		MessageSID:   payload.MessageSid,
		MobileNumber: from,
		Direction:    models.MessageDirectionInbound,
		Body:         payload.Body,
	}); err != nil {
		log.Printf("Failed to persist inbound message: %v", err)
	}

	reply := h.buildReply(from, payload.Body)
	if reply != "" {
		if err := h.sender.SendMessage(from, reply); err != nil {
			log.Printf("Failed to send WhatsApp reply to %s: %v", from, err)
		} else if _, err := h.store.SaveWhatsAppMessage(&models.WhatsAppMessage{
			MobileNumber: from,
			Direction:    models.MessageDirectionOutbound,
			Body:         reply,
		}); err != nil {
			log.Printf("Failed to persist outbound message: %v", err)
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *WhatsAppHandler) buildReply(from string, body string) string {
	if !isStatusCheckRequest(body) {
		return "Hi! To check your application status, please send a message like 'Check my application status' along with your mobile number."
	}

	mobile := strings.TrimPrefix(from, "+91")
	status, err := h.leadService.Status(&models.LeadStatusRequest{MobileNumber: mobile})
	if err != nil {
		log.Printf("Status lookup for %s failed: %v", mobile, err)
		return "We could not find an application for this number. Please verify your registered mobile number."
	}
	return "Your loan application status is: " + status
}

// ListMessages handles GET /api_v1/whatsapp/messages with optional
// mobile_number and direction filters.
func (h *WhatsAppHandler) ListMessages(c *fiber.Ctx) error {
	mobile := c.Query("mobile_number")
	direction := strings.ToLower(c.Query("direction"))
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if direction != "" && direction != models.MessageDirectionInbound && direction != models.MessageDirectionOutbound {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "direction must be inbound or outbound",
		})
	}

	messages, err := h.store.GetWhatsAppMessages(mobile, direction, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error retrieving WhatsApp messages",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}
