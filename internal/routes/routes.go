package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/asheemsiwach08/homi-apis/internal/config"
	"github.com/asheemsiwach08/homi-apis/internal/handlers"
	"github.com/asheemsiwach08/homi-apis/internal/middleware"
	"github.com/asheemsiwach08/homi-apis/internal/services"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

// Setup configures all API routes.
func Setup(app *fiber.App, cfg *config.Config, store storage.Store, otpService *services.OTPService, leadService *services.LeadService, whatsapp *services.WhatsAppService) {
	app.Get("/", handlers.Root)
	app.Get("/health", handlers.Health(store))

	api := app.Group("/api_v1")

	otpHandler := handlers.NewOTPHandler(otpService)
	api.Post("/otp_send", otpHandler.Send)
	api.Post("/otp_resend", otpHandler.Resend)
	api.Post("/otp_verify", otpHandler.Verify)

	leadHandler := handlers.NewLeadHandler(leadService)
	api.Post("/lead_create", leadHandler.Create)
	api.Post("/lead_status", leadHandler.Status)
	api.Post("/book_appointment", leadHandler.BookAppointment)

	whatsappHandler := handlers.NewWhatsAppHandler(store, whatsapp, leadService)
	if cfg.Environment == "development" || cfg.DisableWebhookValidation {
		api.Post("/whatsapp/webhook", whatsappHandler.HandleWebhook)
	} else {
		api.Post("/whatsapp/webhook", middleware.ValidateTwilioSignature(cfg.TwilioAuthToken), whatsappHandler.HandleWebhook)
	}
	api.Get("/whatsapp/messages", whatsappHandler.ListMessages)
}
