package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DebbieAwesomePawsome/pawsome-platform/internal/domain"
)

// serviceColumns must match the Scan order in scanService.
const serviceColumns = `id, name, price_string, description, category, created_at, updated_at`

// ServiceRepo implements domain.ServiceRepository backed by PostgreSQL.
// The canonical catalog order is the sort_order column; it never leaves
// this package, callers only ever see the ordered sequence.
type ServiceRepo struct {
	pool *pgxpool.Pool
}

func NewServiceRepo(pool *pgxpool.Pool) *ServiceRepo {
	return &ServiceRepo{pool: pool}
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID, &svc.Name, &svc.PriceString, &svc.Description, &svc.Category,
		&svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *ServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}
	return services, nil
}

func (r *ServiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	svc, err := scanService(r.pool.QueryRow(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service by ID: %w", err)
	}
	return svc, nil
}

func (r *ServiceRepo) Create(ctx context.Context, fields domain.ServiceFields) (*domain.Service, error) {
	fields = fields.Normalize()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	// New services always go to the end of the catalog.
	svc, err := scanService(tx.QueryRow(ctx, `
		INSERT INTO services (name, price_string, description, category, sort_order)
		VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM services))
		RETURNING `+serviceColumns,
		fields.Name, fields.PriceString, fields.Description, fields.Category))
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return svc, nil
}

func (r *ServiceRepo) Update(ctx context.Context, id uuid.UUID, fields domain.ServiceFields) (*domain.Service, error) {
	fields = fields.Normalize()

	svc, err := scanService(r.pool.QueryRow(ctx, `
		UPDATE services
		SET name = $2, price_string = $3, description = $4, category = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+serviceColumns,
		id, fields.Name, fields.PriceString, fields.Description, fields.Category))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// Reorder atomically replaces the catalog order with the given permutation.
// The submitted list must contain every current service id exactly once;
// anything else returns domain.ErrInvalidOrder and leaves the order untouched.
func (r *ServiceRepo) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	rows, err := tx.Query(ctx, `SELECT id FROM services FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("failed to lock services: %w", err)
	}
	current := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan service id: %w", err)
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read service ids: %w", err)
	}

	if len(orderedIDs) != len(current) {
		return domain.ErrInvalidOrder
	}
	seen := make(map[uuid.UUID]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] || seen[id] {
			return domain.ErrInvalidOrder
		}
		seen[id] = true
	}

	batch := &pgx.Batch{}
	for position, id := range orderedIDs {
		batch.Queue(`UPDATE services SET sort_order = $1, updated_at = NOW() WHERE id = $2`, position+1, id)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to apply new order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
