package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

// Root handles GET / with a short service directory.
func Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "HOM-i WhatsApp OTP, Lead Creation & Status API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"send_otp":    "POST /api_v1/otp_send",
			"resend_otp":  "POST /api_v1/otp_resend",
			"verify_otp":  "POST /api_v1/otp_verify",
			"create_lead": "POST /api_v1/lead_create",
			"lead_status": "POST /api_v1/lead_status",
			"webhook":     "POST /api_v1/whatsapp/webhook",
		},
	})
}

// Health handles GET /health.
func Health(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storageType := "postgres"
		if _, ok := store.(*storage.MemoryStore); ok {
			storageType = "memory"
		}
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "HOM-i API",
			"storage": storageType,
		})
	}
}
