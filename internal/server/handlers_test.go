package server

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/app"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/config"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	apperrors "github.com/DebbieAwesomePawsome/pawsome-platform/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	listServicesFn    func(ctx context.Context) ([]domain.Service, error)
	createServiceFn   func(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error)
	updateServiceFn   func(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error)
	deleteServiceFn   func(ctx context.Context, id uuid.UUID) error
	reorderServicesFn func(ctx context.Context, orderedIDs []uuid.UUID) error
	loginFn           func(ctx context.Context, username, password string) (*app.LoginResult, error)
	submitBookingFn   func(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error)
	submitEnquiryFn   func(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error)
}

func (m *mockAppService) ListServices(ctx context.Context) ([]domain.Service, error) {
	if m.listServicesFn != nil {
		return m.listServicesFn(ctx)
	}
	return []domain.Service{}, nil
}

func (m *mockAppService) CreateService(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error) {
	if m.createServiceFn != nil {
		return m.createServiceFn(ctx, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) UpdateService(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error) {
	if m.updateServiceFn != nil {
		return m.updateServiceFn(ctx, id, fields)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) DeleteService(ctx context.Context, id uuid.UUID) error {
	if m.deleteServiceFn != nil {
		return m.deleteServiceFn(ctx, id)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockAppService) ReorderServices(ctx context.Context, orderedIDs []uuid.UUID) error {
	if m.reorderServicesFn != nil {
		return m.reorderServicesFn(ctx, orderedIDs)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockAppService) Login(ctx context.Context, username, password string) (*app.LoginResult, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return nil, app.ErrBadCredentials
}

func (m *mockAppService) SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error) {
	if m.submitBookingFn != nil {
		return m.submitBookingFn(ctx, req)
	}
	req.ID = uuid.New()
	return &req, nil
}

func (m *mockAppService) SubmitGeneralEnquiry(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error) {
	if m.submitEnquiryFn != nil {
		return m.submitEnquiryFn(ctx, enq)
	}
	enq.ID = uuid.New()
	return &enq, nil
}

const testToken = "valid-test-token"

type mockTokenVerifier struct {
	verifyFn func(token string) (string, error)
}

func (m *mockTokenVerifier) Verify(token string) (string, error) {
	if m.verifyFn != nil {
		return m.verifyFn(token)
	}
	if token == testToken {
		return "debbie", nil
	}
	return "", fmt.Errorf("invalid token")
}

type mockLoginLimiter struct {
	allowFn func(ctx context.Context, clientAddr string) (bool, error)
}

func (m *mockLoginLimiter) Allow(ctx context.Context, clientAddr string) (bool, error) {
	if m.allowFn != nil {
		return m.allowFn(ctx, clientAddr)
	}
	return true, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, appService AppService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:    e,
		config:  &config.Config{Port: "4000"},
		app:     appService,
		tokens:  &mockTokenVerifier{},
		limiter: &mockLoginLimiter{},
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withLoginLimiter(limiter loginLimiter) func(*Server) {
	return func(s *Server) {
		s.limiter = limiter
	}
}

func withRedisHealthCheck(redis redisHealthChecker) func(*Server) {
	return func(s *Server) {
		s.redis = redis
	}
}

func withPostgresHealthCheck(pg postgresHealthChecker) func(*Server) {
	return func(s *Server) {
		s.db = pg
	}
}

// doRequest runs a request through the full echo stack, including the auth
// middleware and error middleware.
func doRequest(srv *Server, method, target, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}
