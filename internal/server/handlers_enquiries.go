package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	apperrors "github.com/DebbieAwesomePawsome/pawsome-platform/internal/errors"
)

type bookingRequestBody struct {
	ServiceName       string `json:"serviceName"`
	CustomerName      string `json:"customerName"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerPhone     string `json:"customerPhone"`
	PetName           string `json:"petName"`
	PetType           string `json:"petType"`
	PreferredDateTime string `json:"preferredDateTime"`
	Notes             string `json:"notes"`
	ReferralSource    string `json:"referralSource"`
	Honeypot          string `json:"hp_fill_if_bot"`
}

func (s *Server) handleBookingRequest(c echo.Context) error {
	var req bookingRequestBody
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Bots fill the hidden field. Pretend success and drop the submission.
	if req.Honeypot != "" {
		slog.Info("Booking request dropped by honeypot", "ip", c.RealIP())
		return c.JSON(200, map[string]string{"message": "Booking request received. We will be in touch soon!"})
	}

	missing := anyBlank(req.CustomerName, req.CustomerEmail, req.PetName, req.ServiceName, req.PreferredDateTime)
	if missing {
		return apperrors.ValidationError("customer name, email, pet name, service, and preferred date/time are required")
	}

	if _, err := s.app.SubmitBookingRequest(c.Request().Context(), domain.BookingRequest{
		ServiceName:       strings.TrimSpace(req.ServiceName),
		CustomerName:      strings.TrimSpace(req.CustomerName),
		CustomerEmail:     strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:     strings.TrimSpace(req.CustomerPhone),
		PetName:           strings.TrimSpace(req.PetName),
		PetType:           strings.TrimSpace(req.PetType),
		PreferredDateTime: strings.TrimSpace(req.PreferredDateTime),
		Notes:             strings.TrimSpace(req.Notes),
		ReferralSource:    strings.TrimSpace(req.ReferralSource),
	}); err != nil {
		return apperrors.InternalError("failed to submit booking request", err)
	}

	if err := c.JSON(200, map[string]string{"message": "Booking request received. We will be in touch soon!"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type generalEnquiryBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Server) handleGeneralEnquiry(c echo.Context) error {
	var req generalEnquiryBody
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	if anyBlank(req.Name, req.Email, req.Message) {
		return apperrors.ValidationError("name, email, and message are required")
	}

	if _, err := s.app.SubmitGeneralEnquiry(c.Request().Context(), domain.GeneralEnquiry{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}); err != nil {
		return apperrors.InternalError("failed to submit enquiry", err)
	}

	if err := c.JSON(200, map[string]string{"message": "Enquiry received. We will get back to you shortly!"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
