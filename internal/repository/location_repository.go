package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// LocationRepository manages location persistence.
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.Location) error
	Update(ctx context.Context, id string, patch domain.LocationPatch) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository builds the repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) Create(ctx context.Context, loc *domain.Location) error {
	const query = `
        INSERT INTO locations (name, department_id, supervisor, contact_number)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		loc.Name,
		loc.DepartmentID,
		loc.Supervisor,
		loc.ContactNumber,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
}

func (r *locationRepository) Update(ctx context.Context, id string, patch domain.LocationPatch) error {
	const query = `
        UPDATE locations
        SET name = COALESCE($1, name),
            department_id = COALESCE($2, department_id),
            supervisor = COALESCE($3, supervisor),
            contact_number = COALESCE($4, contact_number),
            updated_at = NOW()
        WHERE id = $5`
	cmd, err := r.pool.Exec(ctx, query,
		patch.Name,
		patch.DepartmentID,
		patch.Supervisor,
		patch.ContactNumber,
		id,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	const query = `
        SELECT id, name, department_id, supervisor, contact_number, created_at, updated_at
        FROM locations WHERE id=$1`
	var loc domain.Location
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&loc.ID,
		&loc.Name,
		&loc.DepartmentID,
		&loc.Supervisor,
		&loc.ContactNumber,
		&loc.CreatedAt,
		&loc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) List(ctx context.Context) ([]domain.Location, error) {
	const query = `
        SELECT id, name, department_id, supervisor, contact_number, created_at, updated_at
        FROM locations ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.DepartmentID, &loc.Supervisor, &loc.ContactNumber, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}
