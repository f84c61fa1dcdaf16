package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// AdminService implements the privileged gateway. It holds the only
// write path into the credential store's admin flag and re-validates
// the caller's Admin role on every call, independently of whatever the
// client checked. Unprovable admins are rejected with 401.
type AdminService struct {
	identities repository.IdentityRepository
	users      repository.AppUserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAdminService builds the gateway service.
func NewAdminService(identities repository.IdentityRepository, users repository.AppUserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminService {
	return &AdminService{identities: identities, users: users, dispatcher: dispatcher, logger: logger}
}

func (s *AdminService) requireAdmin(caller *domain.AppUser) error {
	if !caller.HasRole(domain.RoleAdmin) {
		return apperrors.NewUnauthorized("admin role required")
	}
	return nil
}

// DeleteUser deletes the identity record, then best-effort deletes the
// profile row. A profile that is already gone does not fail the call.
func (s *AdminService) DeleteUser(ctx context.Context, caller *domain.AppUser, uid string) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}

	if err := s.identities.Delete(ctx, uid); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, uid); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Warn("profile row cleanup failed", zap.String("uid", uid), zap.Error(err))
	}
	s.publish(ctx, events.TableAppUsers, events.OpDelete, uid)
	return nil
}

// SetAdminClaim reconciles the target's role array with the requested
// admin flag (single-statement merge/remove, so concurrent role edits
// cannot be lost) and mirrors the flag into the identity metadata.
func (s *AdminService) SetAdminClaim(ctx context.Context, caller *domain.AppUser, uid string, admin bool) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}

	if admin {
		if err := s.users.AddRole(ctx, uid, domain.RoleAdmin); err != nil {
			return err
		}
	} else {
		if err := s.users.RemoveRole(ctx, uid, domain.RoleAdmin); err != nil {
			return err
		}
	}
	if err := s.identities.SetAdminFlag(ctx, uid, admin); err != nil {
		return err
	}
	s.publish(ctx, events.TableAppUsers, events.OpUpdate, uid)
	return nil
}

func (s *AdminService) publish(ctx context.Context, table events.Table, op events.Op, rowID string) {
	if err := s.dispatcher.Publish(ctx, events.NewEvent(table, op, rowID)); err != nil {
		s.logger.Warn("publish change event", zap.String("table", string(table)), zap.Error(err))
	}
}
