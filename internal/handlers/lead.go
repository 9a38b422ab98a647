package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/asheemsiwach08/homi-apis/internal/models"
	"github.com/asheemsiwach08/homi-apis/internal/services"
	"github.com/asheemsiwach08/homi-apis/internal/storage"
)

// LeadHandler handles lead creation, status tracking and appointments.
type LeadHandler struct {
	leadService *services.LeadService
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// Create handles POST /api_v1/lead_create.
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var req models.LeadCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return leadError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	lead, err := h.leadService.Create(&req)
	if err != nil {
		if isValidationError(err) {
			return leadError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return leadError(c, fiber.StatusInternalServerError, "Lead creation failed")
	}

	return c.JSON(models.LeadResponse{
		Success: true,
		Message: "Lead created successfully",
		Data: map[string]any{
			"basic_application_id": lead.BasicApplicationID,
			"reference_id":         lead.RelationID,
		},
	})
}

// Status handles POST /api_v1/lead_status.
func (h *LeadHandler) Status(c *fiber.Ctx) error {
	var req models.LeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return leadError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	status, err := h.leadService.Status(&req)
	switch {
	case errors.Is(err, services.ErrMissingIdentifier):
		return leadError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidMobile):
		return leadError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrLeadNotFound):
		return leadError(c, fiber.StatusNotFound, "Lead not found")
	case err != nil:
		return leadError(c, fiber.StatusInternalServerError, "Lead status lookup failed")
	}

	return c.JSON(models.LeadResponse{
		Success: true,
		Message: "Your lead status is: " + status,
		Data:    map[string]any{"status": status},
	})
}

// BookAppointment handles POST /api_v1/book_appointment.
func (h *LeadHandler) BookAppointment(c *fiber.Ctx) error {
	var req models.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return leadError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.leadService.BookAppointment(&req); err != nil {
		return leadError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(models.LeadResponse{
		Success: true,
		Message: "Appointment booked successfully",
		Data:    map[string]any{"reference_id": req.ReferenceID},
	})
}

func isValidationError(err error) bool {
	for _, v := range []error{
		services.ErrInvalidPAN,
		services.ErrInvalidMobile,
		services.ErrInvalidPinCode,
		services.ErrInvalidLoanAmount,
		services.ErrInvalidLoanTenure,
		services.ErrInvalidLoanType,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func leadError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.LeadResponse{
		Success: false,
		Message: message,
	})
}
