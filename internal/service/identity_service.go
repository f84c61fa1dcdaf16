package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/config"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// IdentityService resolves sessions into identity plus profile and owns
// the sign-up, sign-in and password reset flows.
type IdentityService struct {
	identities repository.IdentityRepository
	users      repository.AppUserRepository
	resets     repository.PasswordResetRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	logger     *zap.Logger
}

// IdentityDependencies bundles repo requirements.
type IdentityDependencies struct {
	IdentityRepo      repository.IdentityRepository
	AppUserRepo       repository.AppUserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Dispatcher        events.Dispatcher
}

// NewIdentityService builds the service.
func NewIdentityService(cfg config.Config, deps IdentityDependencies, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		identities: deps.IdentityRepo,
		users:      deps.AppUserRepo,
		resets:     deps.PasswordResetRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		logger:     logger,
	}
}

// Resolve loads the identity and its profile. A missing profile is
// synthesized with Unverified status and the Viewer role and persisted
// before being exposed; a failed insert is logged and does not block
// resolution, since the row self-heals on the next sign-in.
func (s *IdentityService) Resolve(ctx context.Context, identityID string) (*domain.Identity, *domain.AppUser, error) {
	identity, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	profile, err := s.users.GetByID(ctx, identityID)
	if err == nil {
		return identity, profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	profile = defaultProfile(identity)
	if insertErr := s.users.Create(ctx, profile); insertErr != nil {
		s.logger.Warn("profile synthesis failed", zap.String("identity_id", identityID), zap.Error(insertErr))
	} else {
		s.publish(ctx, events.NewEvent(events.TableAppUsers, events.OpInsert, profile.ID))
	}
	return identity, profile, nil
}

// SignUp registers a new identity and its default profile. No session
// is issued; the account stays unusable until an admin verifies it.
func (s *IdentityService) SignUp(ctx context.Context, name, email, password string) (*domain.AppUser, error) {
	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Email:        email,
		PasswordHash: hash,
		FullName:     name,
	}
	if err := s.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	profile := defaultProfile(identity)
	if err := s.users.Create(ctx, profile); err != nil {
		// The resolver synthesizes it on first resolution instead.
		s.logger.Warn("profile insert at sign-up failed", zap.String("identity_id", identity.ID), zap.Error(err))
	} else {
		s.publish(ctx, events.NewEvent(events.TableAppUsers, events.OpInsert, profile.ID))
	}
	return profile, nil
}

// SignIn authenticates credentials and enforces the verification gate:
// a missing or unverified profile fails the login and no session token
// is issued, so nothing persists past the check.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*domain.AppUser, string, time.Time, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(identity.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	profile, err := s.users.GetByID(ctx, identity.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}
	if !profile.IsVerified() {
		return nil, "", time.Time{}, apperrors.NewUnverified("your account is not verified yet")
	}

	token, exp, err := s.tokenMgr.GenerateToken(identity.ID, identity.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return profile, token, exp, nil
}

// Logout is a no-op for the stateless session token; handlers clear the
// cookie.
func (s *IdentityService) Logout(_ context.Context, _ string) error {
	return nil
}

// RequestPasswordReset persists a reset token for the identity email.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	token := &repository.PasswordResetToken{
		IdentityID: identity.ID,
		Token:      uuid.NewString(),
		ExpiresAt:  time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *IdentityService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("token expired or used", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.identities.UpdatePasswordHash(ctx, token.IdentityID, hash); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *IdentityService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *IdentityService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish change event", zap.String("table", string(event.Table)), zap.Error(err))
	}
}

func defaultProfile(identity *domain.Identity) *domain.AppUser {
	return &domain.AppUser{
		ID:       identity.ID,
		Name:     identity.DisplayName(),
		Email:    identity.Email,
		PhotoURL: identity.AvatarURL,
		Status:   domain.StatusUnverified,
		Roles:    []domain.Role{domain.RoleViewer},
	}
}
