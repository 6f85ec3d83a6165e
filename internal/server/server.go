package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/app"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/config"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	apperrors "github.com/DebbieAwesomePawsome/pawsome-platform/internal/errors"
)

// AppService is the application layer surface the HTTP handlers depend on.
type AppService interface {
	ListServices(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error)
	UpdateService(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ReorderServices(ctx context.Context, orderedIDs []uuid.UUID) error
	Login(ctx context.Context, username, password string) (*app.LoginResult, error)
	SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error)
	SubmitGeneralEnquiry(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error)
}

// tokenVerifier checks a bearer token and returns the admin username.
type tokenVerifier interface {
	Verify(token string) (string, error)
}

// loginLimiter throttles login attempts per client address.
type loginLimiter interface {
	Allow(ctx context.Context, clientAddr string) (bool, error)
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       AppService
	tokens    tokenVerifier
	limiter   loginLimiter
	db        postgresHealthChecker
	redis     redisHealthChecker
	startTime time.Time
}

func NewServer(cfg *config.Config, appService AppService, tokens tokenVerifier, limiter loginLimiter, db postgresHealthChecker, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       appService,
		tokens:    tokens,
		limiter:   limiter,
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
