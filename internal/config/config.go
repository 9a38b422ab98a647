package config

import "github.com/caarlos0/env/v10"

// Config enumerates every recognized option. All values come from the
// environment (a .env file is loaded in main for local development).
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// OTP
	OTPExpiryMinutes int `env:"OTP_EXPIRY_MINUTES" envDefault:"3"`

	// Primary store (Postgres). Empty URL or a failed connection selects
	// the in-memory fallback store instead of crashing the process.
	DatabaseURL    string `env:"DATABASE_URL"`
	UseMemoryStore bool   `env:"USE_MEMORY_STORE" envDefault:"false"`

	// Twilio WhatsApp delivery
	TwilioAccountSID    string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken     string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom  string `env:"TWILIO_WHATSAPP_FROM"`
	OTPTemplateSID      string `env:"TWILIO_OTP_TEMPLATE_SID"`
	LeadCreatedTemplate string `env:"TWILIO_LEAD_CREATED_TEMPLATE_SID"`
	LeadStatusTemplate  string `env:"TWILIO_LEAD_STATUS_TEMPLATE_SID"`

	// Basic Application API (third-party lead system)
	BasicAPIURL    string `env:"BASIC_APPLICATION_API_URL"`
	BasicAPIUserID string `env:"BASIC_APPLICATION_USER_ID"`
	BasicAPIKey    string `env:"BASIC_APPLICATION_API_KEY"`

	// Webhook
	DisableWebhookValidation bool `env:"DISABLE_WEBHOOK_VALIDATION" envDefault:"false"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
