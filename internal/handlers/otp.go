package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/services"
	"github.com/asheemsiwach08/homi-apis/internal/utils"
)

// OTPHandler handles OTP send, resend and verify requests.
type OTPHandler struct {
	otpService *services.OTPService
}

// NewOTPHandler creates a new OTP handler.
func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// Send handles POST /api_v1/otp_send.
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	return h.deliver(c, "OTP sent successfully")
}

// Resend handles POST /api_v1/otp_resend. A new code is issued whether or
// not one is already active.
func (h *OTPHandler) Resend(c *fiber.Ctx) error {
	return h.deliver(c, "OTP resent successfully")
}

func (h *OTPHandler) deliver(c *fiber.Ctx, successMessage string) error {
	var req models.SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return otpError(c, fiber.StatusBadRequest, "Invalid request body", req.PhoneNumber)
	}

	phone, err := h.otpService.Send(req.PhoneNumber)
	switch {
	case errors.Is(err, utils.ErrInvalidPhoneNumber):
		return otpError(c, fiber.StatusBadRequest, "Invalid phone number format", req.PhoneNumber)
	case errors.Is(err, services.ErrDeliveryFailed):
		return otpError(c, fiber.StatusInternalServerError, "Failed to send OTP. Please try again.", phone)
	case err != nil:
		return otpError(c, fiber.StatusInternalServerError, "OTP generation failed", req.PhoneNumber)
	}

	return c.JSON(models.OTPResponse{
		Success: true,
		Message: successMessage,
		Data:    map[string]any{"phone_number": phone},
	})
}

// Verify handles POST /api_v1/otp_verify.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return otpError(c, fiber.StatusBadRequest, "Invalid request body", req.PhoneNumber)
	}

	phone, err := h.otpService.Verify(req.PhoneNumber, req.OTP)
	switch {
	case errors.Is(err, utils.ErrInvalidPhoneNumber):
		return otpError(c, fiber.StatusBadRequest, "Invalid phone number format", req.PhoneNumber)
	case errors.Is(err, services.ErrInvalidOTPFormat):
		return otpError(c, fiber.StatusBadRequest, "OTP must be 6 digits", phone)
	case errors.Is(err, services.ErrOTPNotFound):
		return otpError(c, fiber.StatusNotFound, "OTP not found or expired", phone)
	case errors.Is(err, services.ErrInvalidOTP):
		return otpError(c, fiber.StatusBadRequest, "Invalid OTP", phone)
	case err != nil:
		return otpError(c, fiber.StatusInternalServerError, "OTP verification failed", phone)
	}

	return c.JSON(models.OTPResponse{
		Success: true,
		Message: "OTP verified successfully",
		Data:    map[string]any{"phone_number": phone},
	})
}

func otpError(c *fiber.Ctx, status int, message string, phone string) error {
	return c.Status(status).JSON(models.OTPResponse{
		Success: false,
		Message: message,
		Data:    map[string]any{"phone_number": phone},
	})
}
