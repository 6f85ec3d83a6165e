package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
)

// EnquiryRepo implements domain.EnquiryRepository backed by PostgreSQL.
type EnquiryRepo struct {
	pool *pgxpool.Pool
}

func NewEnquiryRepo(pool *pgxpool.Pool) *EnquiryRepo {
	return &EnquiryRepo{pool: pool}
}

func (r *EnquiryRepo) CreateBookingRequest(ctx context.Context, req domain.BookingRequest) (*domain.BookingRequest, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO booking_requests
			(service_name, customer_name, customer_email, customer_phone,
			 pet_name, pet_type, preferred_date_time, notes, referral_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		req.ServiceName, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
		req.PetName, req.PetType, req.PreferredDateTime, req.Notes, req.ReferralSource,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking request: %w", err)
	}
	return &req, nil
}

func (r *EnquiryRepo) CreateGeneralEnquiry(ctx context.Context, enq domain.GeneralEnquiry) (*domain.GeneralEnquiry, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO general_enquiries (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		enq.Name, enq.Email, enq.Subject, enq.Message,
	).Scan(&enq.ID, &enq.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert general enquiry: %w", err)
	}
	return &enq, nil
}
