package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public catalog
	s.echo.GET("/services", s.handleListServices)

	// Catalog mutations (bearer auth)
	s.echo.POST("/services", s.handleCreateService, s.requireAuth)
	s.echo.PUT("/services/order", s.handleReorderServices, s.requireAuth)
	s.echo.PUT("/services/:id", s.handleUpdateService, s.requireAuth)
	s.echo.DELETE("/services/:id", s.handleDeleteService, s.requireAuth)

	// Admin login (rate limited per client IP)
	s.echo.POST("/auth/admin/login", s.handleAdminLogin)

	// Public enquiry submissions
	s.echo.POST("/booking-request", s.handleBookingRequest)
	s.echo.POST("/general-enquiry", s.handleGeneralEnquiry)
}
