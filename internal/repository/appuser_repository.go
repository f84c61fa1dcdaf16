package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// AppUserRepository manages profile rows. Profile IDs equal identity IDs.
type AppUserRepository interface {
	Create(ctx context.Context, user *domain.AppUser) error
	Update(ctx context.Context, id string, patch domain.AppUserPatch) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.AppUser, error)
	List(ctx context.Context) ([]domain.AppUser, error)
	SetRoles(ctx context.Context, id string, roles []domain.Role) error
	// AddRole and RemoveRole mutate the role array in a single statement
	// so concurrent role edits cannot lose each other's writes.
	AddRole(ctx context.Context, id string, role domain.Role) error
	RemoveRole(ctx context.Context, id string, role domain.Role) error
	SetStatus(ctx context.Context, id string, status domain.VerificationStatus) error
}

type appUserRepository struct {
	pool *pgxpool.Pool
}

// NewAppUserRepository returns a Postgres-backed implementation.
func NewAppUserRepository(pool *pgxpool.Pool) AppUserRepository {
	return &appUserRepository{pool: pool}
}

func (r *appUserRepository) Create(ctx context.Context, user *domain.AppUser) error {
	const query = `
        INSERT INTO app_users (id, name, email, phone, department_id, photo_url, status, role)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.DepartmentID,
		user.PhotoURL,
		user.Status,
		domain.RoleStrings(user.Roles),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *appUserRepository) Update(ctx context.Context, id string, patch domain.AppUserPatch) error {
	const query = `
        UPDATE app_users
        SET name = COALESCE($1, name),
            phone = COALESCE($2, phone),
            department_id = COALESCE($3, department_id),
            photo_url = COALESCE($4, photo_url),
            updated_at = NOW()
        WHERE id = $5`
	cmd, err := r.pool.Exec(ctx, query,
		patch.Name,
		patch.Phone,
		patch.DepartmentID,
		patch.PhotoURL,
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

func (r *appUserRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM app_users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appUserRepository) GetByID(ctx context.Context, id string) (*domain.AppUser, error) {
	const query = `
        SELECT id, name, email, phone, department_id, photo_url, status, role, created_at, updated_at
        FROM app_users WHERE id=$1`
	return scanAppUser(r.pool.QueryRow(ctx, query, id))
}

func (r *appUserRepository) List(ctx context.Context) ([]domain.AppUser, error) {
	const query = `
        SELECT id, name, email, phone, department_id, photo_url, status, role, created_at, updated_at
        FROM app_users ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AppUser
	for rows.Next() {
		user, err := scanAppUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *user)
	}
	return result, rows.Err()
}

func (r *appUserRepository) SetRoles(ctx context.Context, id string, roles []domain.Role) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE app_users SET role=$1, updated_at=NOW() WHERE id=$2`,
		domain.RoleStrings(roles), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appUserRepository) AddRole(ctx context.Context, id string, role domain.Role) error {
	const query = `
        UPDATE app_users
        SET role = array_append(role, $1), updated_at = NOW()
        WHERE id = $2 AND NOT ($1 = ANY(role))`
	_, err := r.pool.Exec(ctx, query, string(role), id)
	return err
}

func (r *appUserRepository) RemoveRole(ctx context.Context, id string, role domain.Role) error {
	const query = `
        UPDATE app_users
        SET role = array_remove(role, $1), updated_at = NOW()
        WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, string(role), id)
	return err
}

func (r *appUserRepository) SetStatus(ctx context.Context, id string, status domain.VerificationStatus) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE app_users SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAppUser(row pgx.Row) (*domain.AppUser, error) {
	var (
		user  domain.AppUser
		roles []string
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.DepartmentID,
		&user.PhotoURL,
		&user.Status,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Roles = domain.ParseRoles(roles)
	return &user, nil
}
