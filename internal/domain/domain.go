package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned when a service is created or updated with an
// empty category.
const DefaultCategory = "Regular"

// --- Model types ---

// Service is one sellable offering. The catalog order is canonical and lives
// in the repository; it is exposed on the wire only as the position of the
// service in the listed sequence.
type Service struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	PriceString string    `db:"price_string"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ServiceFields carries the mutable fields of a service for create/update.
type ServiceFields struct {
	Name        string
	PriceString string
	Description string
	Category    string
}

// Normalize trims all fields and applies the default category.
func (f ServiceFields) Normalize() ServiceFields {
	f.Name = strings.TrimSpace(f.Name)
	f.PriceString = strings.TrimSpace(f.PriceString)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	return f
}

// Validate reports whether the required fields are present after trimming.
func (f ServiceFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" ||
		strings.TrimSpace(f.PriceString) == "" ||
		strings.TrimSpace(f.Description) == "" {
		return ErrMissingServiceFields
	}
	return nil
}

// Admin is an administrator account that can mutate the catalog.
type Admin struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// BookingRequest is a customer booking enquiry for a specific service.
type BookingRequest struct {
	ID                uuid.UUID `db:"id"`
	ServiceName       string    `db:"service_name"`
	CustomerName      string    `db:"customer_name"`
	CustomerEmail     string    `db:"customer_email"`
	CustomerPhone     string    `db:"customer_phone"`
	PetName           string    `db:"pet_name"`
	PetType           string    `db:"pet_type"`
	PreferredDateTime string    `db:"preferred_date_time"`
	Notes             string    `db:"notes"`
	ReferralSource    string    `db:"referral_source"`
	CreatedAt         time.Time `db:"created_at"`
}

// GeneralEnquiry is a free-form contact message.
type GeneralEnquiry struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// --- Repository interfaces ---

// ServiceRepository persists the catalog and its canonical order.
type ServiceRepository interface {
	// List returns all services in canonical order.
	List(ctx context.Context) ([]Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	// Create appends the new service to the end of the order.
	Create(ctx context.Context, fields ServiceFields) (*Service, error)
	// Update changes fields only; the order is untouched.
	Update(ctx context.Context, id uuid.UUID, fields ServiceFields) (*Service, error)
	// Delete removes the service; remaining services keep their relative order.
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder replaces the canonical order with the given permutation.
	// The input must contain every current id exactly once.
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
}

// AdminRepository looks up and seeds administrator accounts.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	// Upsert creates the admin or replaces its password hash.
	Upsert(ctx context.Context, username, passwordHash string) (*Admin, error)
}

// EnquiryRepository persists incoming booking requests and general enquiries.
type EnquiryRepository interface {
	CreateBookingRequest(ctx context.Context, req BookingRequest) (*BookingRequest, error)
	CreateGeneralEnquiry(ctx context.Context, enq GeneralEnquiry) (*GeneralEnquiry, error)
}
