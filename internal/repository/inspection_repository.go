package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// InspectionRepository manages inspection persistence. List returns rows
// ordered by scheduled date ascending, which is the order the mirror
// exposes to consumers.
type InspectionRepository interface {
	Create(ctx context.Context, ins *domain.Inspection) error
	Update(ctx context.Context, id string, patch domain.InspectionPatch) error
	GetByID(ctx context.Context, id string) (*domain.Inspection, error)
	List(ctx context.Context) ([]domain.Inspection, error)
	// ToggleStatus flips Pending/Complete in a single statement and
	// returns the new status, so concurrent togglers cannot lose writes.
	ToggleStatus(ctx context.Context, id string) (domain.InspectionStatus, error)
}

type inspectionRepository struct {
	pool *pgxpool.Pool
}

// NewInspectionRepository builds the repository.
func NewInspectionRepository(pool *pgxpool.Pool) InspectionRepository {
	return &inspectionRepository{pool: pool}
}

func (r *inspectionRepository) Create(ctx context.Context, ins *domain.Inspection) error {
	const query = `
        INSERT INTO inspections
            (location_id, department_id, location_name, supervisor, contact_number, date, auditor1, auditor2, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ins.LocationID,
		ins.DepartmentID,
		ins.LocationName,
		ins.Supervisor,
		ins.ContactNumber,
		ins.Date,
		ins.Auditor1,
		ins.Auditor2,
		ins.Status,
	).Scan(&ins.ID, &ins.CreatedAt, &ins.UpdatedAt)
}

func (r *inspectionRepository) Update(ctx context.Context, id string, patch domain.InspectionPatch) error {
	const query = `
        UPDATE inspections
        SET date = COALESCE($1, date),
            auditor1 = COALESCE($2, auditor1),
            auditor2 = COALESCE($3, auditor2),
            status = COALESCE($4, status),
            updated_at = NOW()
        WHERE id = $5`
	cmd, err := r.pool.Exec(ctx, query,
		patch.Date,
		patch.Auditor1,
		patch.Auditor2,
		patch.Status,
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

func (r *inspectionRepository) GetByID(ctx context.Context, id string) (*domain.Inspection, error) {
	const query = `
        SELECT id, location_id, department_id, location_name, supervisor, contact_number,
               date, auditor1, auditor2, status, created_at, updated_at
        FROM inspections WHERE id=$1`
	var ins domain.Inspection
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ins.ID,
		&ins.LocationID,
		&ins.DepartmentID,
		&ins.LocationName,
		&ins.Supervisor,
		&ins.ContactNumber,
		&ins.Date,
		&ins.Auditor1,
		&ins.Auditor2,
		&ins.Status,
		&ins.CreatedAt,
		&ins.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *inspectionRepository) List(ctx context.Context) ([]domain.Inspection, error) {
	const query = `
        SELECT id, location_id, department_id, location_name, supervisor, contact_number,
               date, auditor1, auditor2, status, created_at, updated_at
        FROM inspections ORDER BY date ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Inspection
	for rows.Next() {
		var ins domain.Inspection
		if err := rows.Scan(
			&ins.ID,
			&ins.LocationID,
			&ins.DepartmentID,
			&ins.LocationName,
			&ins.Supervisor,
			&ins.ContactNumber,
			&ins.Date,
			&ins.Auditor1,
			&ins.Auditor2,
			&ins.Status,
			&ins.CreatedAt,
			&ins.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ins)
	}
	return result, rows.Err()
}

func (r *inspectionRepository) ToggleStatus(ctx context.Context, id string) (domain.InspectionStatus, error) {
	const query = `
        UPDATE inspections
        SET status = CASE WHEN status = 'Pending' THEN 'Complete' ELSE 'Pending' END,
            updated_at = NOW()
        WHERE id = $1
        RETURNING status`
	var status domain.InspectionStatus
	if err := r.pool.QueryRow(ctx, query, id).Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}
