package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/asheemsiwach08/homi-apis/internal/config"
)

// WhatsAppService sends WhatsApp messages via Twilio. OTP codes are passed
// as template variables and never logged.
type WhatsAppService struct {
	client *twilio.RestClient
	from   string

	otpTemplateSID         string
	leadCreatedTemplateSID string
	leadStatusTemplateSID  string
}

// NewWhatsAppService creates a Twilio-backed WhatsApp service.
func NewWhatsAppService(cfg *config.Config) (*WhatsAppService, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioWhatsAppFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials in configuration")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &WhatsAppService{
		client:                 client,
		from:                   cfg.TwilioWhatsAppFrom,
		otpTemplateSID:         cfg.OTPTemplateSID,
		leadCreatedTemplateSID: cfg.LeadCreatedTemplate,
		leadStatusTemplateSID:  cfg.LeadStatusTemplate,
	}, nil
}

// SendOTP sends the OTP template with the code as its only variable.
func (w *WhatsAppService) SendOTP(phone string, code string) error {
	if err := w.sendTemplate(phone, w.otpTemplateSID, map[string]string{"1": code}); err != nil {
		log.Printf("Failed to send OTP to %s: %v", phone, err)
		return err
	}
	log.Printf("OTP sent to %s", phone)
	return nil
}

// SendLeadCreationConfirmation notifies the customer that their
// application was created.
func (w *WhatsAppService) SendLeadCreationConfirmation(phone string, customerName string, basicAppID string) error {
	return w.sendTemplate(phone, w.leadCreatedTemplateSID, map[string]string{
		"1": customerName,
		"2": basicAppID,
	})
}

// SendLeadStatusUpdate notifies the customer of their current lead status.
func (w *WhatsAppService) SendLeadStatusUpdate(phone string, customerName string, status string) error {
	return w.sendTemplate(phone, w.leadStatusTemplateSID, map[string]string{
		"1": customerName,
		"2": status,
	})
}

// SendMessage sends a plain text WhatsApp message.
func (w *WhatsAppService) SendMessage(phone string, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(w.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", phone))
	params.SetBody(body)

	resp, err := w.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send WhatsApp message to %s: %v", phone, err)
		return err
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
	}
	return nil
}

func (w *WhatsAppService) sendTemplate(phone string, templateSID string, variables map[string]string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(w.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", phone))
	params.SetContentSid(templateSID)

	if len(variables) > 0 {
		variablesJSON, err := json.Marshal(variables)
		if err != nil {
			return fmt.Errorf("failed to marshal content variables: %w", err)
		}
		params.SetContentVariables(string(variablesJSON))
	}

	resp, err := w.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
	}
	return nil
}
