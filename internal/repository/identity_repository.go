package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/inspection-service/internal/domain"
)

// IdentityRepository manages the credential store, separate from
// application profiles. The admin flag is written only by the
// privileged gateway.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetAdminFlag(ctx context.Context, id string, admin bool) error
	Delete(ctx context.Context, id string) error
}

type identityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository returns a Postgres-backed implementation.
func NewIdentityRepository(pool *pgxpool.Pool) IdentityRepository {
	return &identityRepository{pool: pool}
}

func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	const query = `
        INSERT INTO identities (email, password_hash, full_name, avatar_url, is_admin)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		identity.Email,
		identity.PasswordHash,
		identity.FullName,
		identity.AvatarURL,
		identity.Admin,
	).Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt)
}

func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `
        SELECT id, email, password_hash, full_name, avatar_url, is_admin, created_at, updated_at
        FROM identities WHERE id=$1`
	return scanIdentity(r.pool.QueryRow(ctx, query, id))
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
        SELECT id, email, password_hash, full_name, avatar_url, is_admin, created_at, updated_at
        FROM identities WHERE email=$1`
	return scanIdentity(r.pool.QueryRow(ctx, query, email))
}

func (r *identityRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE identities SET password_hash=$1, updated_at=NOW() WHERE id=$2`,
		hash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *identityRepository) SetAdminFlag(ctx context.Context, id string, admin bool) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE identities SET is_admin=$1, updated_at=NOW() WHERE id=$2`,
		admin, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *identityRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM identities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanIdentity(row pgx.Row) (*domain.Identity, error) {
	var identity domain.Identity
	if err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.FullName,
		&identity.AvatarURL,
		&identity.Admin,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &identity, nil
}
