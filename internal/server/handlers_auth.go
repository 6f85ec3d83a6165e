package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/app"
	apperrors "github.com/DebbieAwesomePawsome/pawsome-platform/internal/errors"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/logging"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/metrics"
)

// requireAuth verifies the Authorization bearer token and stores the admin
// username in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		username, err := s.tokens.Verify(token)
		if err != nil {
			return apperrors.UnauthorizedError("invalid or expired token")
		}

		c.Set("adminUser", username)
		return next(c)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	Username string `json:"username"`
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	ctx := c.Request().Context()

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, c.RealIP())
		if err != nil {
			// Limiter failure must not lock admins out.
			logging.WithError(err).Warn("Login rate limiter unavailable")
		} else if !allowed {
			metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
			return apperrors.RateLimitedError("too many login attempts, try again later")
		}
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	result, err := s.app.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrBadCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return apperrors.UnauthorizedError("invalid username or password")
		}
		return apperrors.InternalError("login failed", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logging.WithAdmin(result.Username).Info("Admin logged in")

	if err := c.JSON(200, loginResponse{
		Token: result.Token,
		User:  loginUser{Username: result.Username},
	}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
