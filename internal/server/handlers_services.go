package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	apperrors "github.com/DebbieAwesomePawsome/pawsome-platform/internal/errors"
)

// serviceResponse is the wire representation of a service. The catalog
// position is implied by the order of the listed sequence and is never
// exposed as a field.
type serviceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PriceString string    `json:"price_string"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toServiceResponse(s *domain.Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		PriceString: s.PriceString,
		Description: s.Description,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type serviceRequest struct {
	Name        string `json:"name"`
	PriceString string `json:"price_string"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (r serviceRequest) fields() domain.ServiceFields {
	return domain.ServiceFields{
		Name:        r.Name,
		PriceString: r.PriceString,
		Description: r.Description,
		Category:    r.Category,
	}
}

func (s *Server) handleListServices(c echo.Context) error {
	services, err := s.app.ListServices(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list services", err)
	}

	out := make([]serviceResponse, 0, len(services))
	for i := range services {
		out = append(out, toServiceResponse(&services[i]))
	}

	if err := c.JSON(200, map[string]any{"services": out}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	created, err := s.app.CreateService(c.Request().Context(), req.fields())
	if err != nil {
		if errors.Is(err, domain.ErrMissingServiceFields) {
			return apperrors.ValidationError(err.Error())
		}
		return apperrors.InternalError("failed to create service", err)
	}

	if err := c.JSON(201, toServiceResponse(created)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid service id").WithField("id", c.Param("id"))
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	updated, err := s.app.UpdateService(c.Request().Context(), id, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingServiceFields):
			return apperrors.ValidationError(err.Error())
		case errors.Is(err, domain.ErrServiceNotFound):
			return apperrors.NotFoundError("service not found").WithField("id", id.String())
		default:
			return apperrors.InternalError("failed to update service", err).WithField("id", id.String())
		}
	}

	if err := c.JSON(200, toServiceResponse(updated)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteService(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid service id").WithField("id", c.Param("id"))
	}

	if err := s.app.DeleteService(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			return apperrors.NotFoundError("service not found").WithField("id", id.String())
		}
		return apperrors.InternalError("failed to delete service", err).WithField("id", id.String())
	}

	if err := c.JSON(200, map[string]string{"message": "Service deleted successfully"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type reorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

func (s *Server) handleReorderServices(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.OrderedIDs) == 0 {
		return apperrors.ValidationError("orderedIds must not be empty")
	}

	ids := make([]uuid.UUID, 0, len(req.OrderedIDs))
	for _, raw := range req.OrderedIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperrors.ValidationError("invalid service id in orderedIds").WithField("id", raw)
		}
		ids = append(ids, id)
	}

	if err := s.app.ReorderServices(c.Request().Context(), ids); err != nil {
		if errors.Is(err, domain.ErrInvalidOrder) {
			return apperrors.ValidationError(err.Error())
		}
		return apperrors.InternalError("failed to reorder services", err)
	}

	if err := c.JSON(200, map[string]string{"message": "Service order updated successfully"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
