package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/logging"
	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/metrics"
)

// CatalogReader serves the public services list, normally through the Redis
// read-through cache. Invalidate is called after every catalog mutation.
type CatalogReader interface {
	List(ctx context.Context) ([]domain.Service, error)
	Invalidate(ctx context.Context)
}

// TokenIssuer signs admin bearer tokens.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Notifier delivers best-effort notifications for incoming enquiries.
// Implementations must not fail the request path.
type Notifier interface {
	BookingReceived(ctx context.Context, req *domain.BookingRequest)
	EnquiryReceived(ctx context.Context, enq *domain.GeneralEnquiry)
}

// Service is the application layer. It is the only component that references
// multiple domain components and orchestrates all use cases.
type Service struct {
	services  domain.ServiceRepository
	catalog   CatalogReader
	admins    domain.AdminRepository
	enquiries domain.EnquiryRepository
	tokens    TokenIssuer
	verify    func(hash, password string) error
	notifier  Notifier
}

// NewService creates the application layer service.
// notifier may be nil if email notification is not configured.
func NewService(
	services domain.ServiceRepository,
	catalog CatalogReader,
	admins domain.AdminRepository,
	enquiries domain.EnquiryRepository,
	tokens TokenIssuer,
	verifyPassword func(hash, password string) error,
	notifier Notifier,
) *Service {
	return &Service{
		services:  services,
		catalog:   catalog,
		admins:    admins,
		enquiries: enquiries,
		tokens:    tokens,
		verify:    verifyPassword,
		notifier:  notifier,
	}
}

// ListServices returns the catalog in canonical order.
func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.catalog.List(ctx)
}

// CreateService validates the fields and appends a new service to the catalog.
func (s *Service) CreateService(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	svc, err := s.services.Create(ctx, fields)
	if err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("create", "ok").Inc()
	s.catalog.Invalidate(ctx)
	return svc, nil
}

// UpdateService validates the fields and updates a service in place.
// The catalog order is untouched.
func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	svc, err := s.services.Update(ctx, id, fields)
	if err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("update", "error").Inc()
		return nil, err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("update", "ok").Inc()
	s.catalog.Invalidate(ctx)
	return svc, nil
}

// DeleteService removes a service; the remaining catalog keeps its order.
// The service is looked up first so an unknown id is reported without
// running the delete, and so the audit log can name what was removed.
func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	if err := s.services.Delete(ctx, id); err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("delete", "ok").Inc()
	s.catalog.Invalidate(ctx)
	logging.WithService(id.String()).Info("Service deleted", "name", svc.Name)
	return nil
}

// ReorderServices replaces the catalog order with the submitted permutation.
// The repository rejects anything that is not an exact permutation of all
// current ids.
func (s *Service) ReorderServices(ctx context.Context, orderedIDs []uuid.UUID) error {
	if err := s.services.Reorder(ctx, orderedIDs); err != nil {
		metrics.CatalogMutationsTotal.WithLabelValues("reorder", "error").Inc()
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("reorder", "ok").Inc()
	s.catalog.Invalidate(ctx)
	return nil
}

// LoginResult carries the issued token and the authenticated identity.
type LoginResult struct {
	Token    string
	Username string
}

// ErrBadCredentials covers both unknown usernames and wrong passwords, so the
// response never reveals which one failed.
var ErrBadCredentials = errors.New("invalid username or password")

// Login authenticates an admin and issues a bearer token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrBadCredentials
	}

	admin, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrAdminNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}

	if err := s.verify(admin.PasswordHash, password); err != nil {
		return nil, ErrBadCredentials
	}

	token, err := s.tokens.Issue(admin.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &LoginResult{Token: token, Username: admin.Username}, nil
}

// SubmitBookingRequest persists a booking request and notifies the business.
func (s *Service) SubmitBookingRequest(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error) {
	saved, err := s.enquiries.CreateBookingRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.EnquiriesReceived.WithLabelValues("booking").Inc()

	if s.notifier != nil {
		s.notifier.BookingReceived(ctx, saved)
	}
	slog.Info("Booking request received", "service", saved.ServiceName, "customer", saved.CustomerName)
	return saved, nil
}

// SubmitGeneralEnquiry persists a general enquiry and notifies the business.
func (s *Service) SubmitGeneralEnquiry(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error) {
	saved, err := s.enquiries.CreateGeneralEnquiry(ctx, enq)
	if err != nil {
		return nil, err
	}
	metrics.EnquiriesReceived.WithLabelValues("general").Inc()

	if s.notifier != nil {
		s.notifier.EnquiryReceived(ctx, saved)
	}
	slog.Info("General enquiry received", "name", saved.Name)
	return saved, nil
}

// SeedAdmin creates or updates the configured admin account at startup.
func (s *Service) SeedAdmin(ctx context.Context, username, passwordHash string) error {
	if _, err := s.admins.Upsert(ctx, username, passwordHash); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	slog.Info("Admin account seeded", "username", username)
	return nil
}
