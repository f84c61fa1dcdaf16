package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/config"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

func newIdentityServiceForTest() (*IdentityService, *fakeIdentityRepo, *fakeAppUserRepo, *fakeResetRepo) {
	identities := newFakeIdentityRepo()
	users := newFakeAppUserRepo()
	resets := newFakeResetRepo()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.SessionTTLMinutes = 60
	cfg.Auth.PasswordResetTTLMinutes = 30
	cfg.Auth.BcryptCost = bcrypt.MinCost

	svc := NewIdentityService(cfg, IdentityDependencies{
		IdentityRepo:      identities,
		AppUserRepo:       users,
		PasswordResetRepo: resets,
		Dispatcher:        events.NewInMemoryDispatcher(),
	}, zap.NewNop())
	return svc, identities, users, resets
}

func seedIdentity(t *testing.T, identities *fakeIdentityRepo, email, password string) *domain.Identity {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	identity := &domain.Identity{Email: email, PasswordHash: hash, FullName: "Seeded User"}
	if err := identities.Create(context.Background(), identity); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	return identity
}

func TestResolveSynthesizesMissingProfile(t *testing.T) {
	svc, identities, users, _ := newIdentityServiceForTest()
	ctx := context.Background()

	identity := seedIdentity(t, identities, "new@example.com", "pw")

	_, profile, err := svc.Resolve(ctx, identity.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if profile == nil {
		t.Fatal("expected synthesized profile")
	}
	if profile.Status != domain.StatusUnverified {
		t.Errorf("status = %q, want Unverified", profile.Status)
	}
	if len(profile.Roles) != 1 || profile.Roles[0] != domain.RoleViewer {
		t.Errorf("roles = %v, want exactly [Viewer]", profile.Roles)
	}
	if profile.Name != "Seeded User" {
		t.Errorf("name = %q, want identity display name", profile.Name)
	}

	// A second resolution must reuse the persisted row, not add another.
	if _, _, err := svc.Resolve(ctx, identity.ID); err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if len(users.items) != 1 {
		t.Errorf("profile rows = %d, want exactly 1", len(users.items))
	}
}

func TestResolveUnknownIdentityYieldsNilSession(t *testing.T) {
	svc, _, _, _ := newIdentityServiceForTest()

	identity, profile, err := svc.Resolve(context.Background(), "no-such-id")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity != nil || profile != nil {
		t.Errorf("got identity=%v profile=%v, want nil/nil for unknown id", identity, profile)
	}
}

func TestResolveSurvivesProfileInsertFailure(t *testing.T) {
	svc, identities, users, _ := newIdentityServiceForTest()
	ctx := context.Background()

	identity := seedIdentity(t, identities, "flaky@example.com", "pw")
	users.createErr = errors.New("insert failed")

	resolved, profile, err := svc.Resolve(ctx, identity.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved == nil || profile == nil {
		t.Fatal("resolution must still expose the synthesized profile")
	}
	if len(users.items) != 0 {
		t.Errorf("profile rows = %d, want 0 after failed insert", len(users.items))
	}
}

func TestSignUpIssuesNoSessionAndDefaultsProfile(t *testing.T) {
	svc, _, users, _ := newIdentityServiceForTest()
	ctx := context.Background()

	profile, err := svc.SignUp(ctx, "Alice", "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if profile.Status != domain.StatusUnverified {
		t.Errorf("status = %q, want Unverified", profile.Status)
	}
	if len(profile.Roles) != 1 || profile.Roles[0] != domain.RoleViewer {
		t.Errorf("roles = %v, want [Viewer]", profile.Roles)
	}
	if len(users.items) != 1 {
		t.Errorf("profile rows = %d, want 1", len(users.items))
	}

	_, err = svc.SignUp(ctx, "Alice", "alice@example.com", "secret")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "CONFLICT" {
		t.Errorf("duplicate sign-up err = %v, want CONFLICT", err)
	}
}

func TestSignInEnforcesVerificationGate(t *testing.T) {
	svc, identities, users, _ := newIdentityServiceForTest()
	ctx := context.Background()

	identity := seedIdentity(t, identities, "alice@example.com", "secret")
	if err := users.Create(ctx, defaultProfile(identity)); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	_, token, _, err := svc.SignIn(ctx, "alice@example.com", "secret")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "UNVERIFIED" {
		t.Fatalf("unverified sign-in err = %v, want UNVERIFIED", err)
	}
	if token != "" {
		t.Fatal("no session token may be issued for an unverified profile")
	}

	if err := users.SetStatus(ctx, identity.ID, domain.StatusVerified); err != nil {
		t.Fatalf("verify profile: %v", err)
	}
	profile, token, _, err := svc.SignIn(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("verified sign-in: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token for a verified profile")
	}
	if profile.ID != identity.ID {
		t.Errorf("profile id = %q, want %q", profile.ID, identity.ID)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.IdentityID != identity.ID {
		t.Errorf("token subject = %q, want %q", claims.IdentityID, identity.ID)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, identities, users, _ := newIdentityServiceForTest()
	ctx := context.Background()

	identity := seedIdentity(t, identities, "alice@example.com", "secret")
	profile := defaultProfile(identity)
	profile.Status = domain.StatusVerified
	if err := users.Create(ctx, profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	for _, tc := range []struct{ email, password string }{
		{"alice@example.com", "wrong"},
		{"nobody@example.com", "secret"},
	} {
		_, token, _, err := svc.SignIn(ctx, tc.email, tc.password)
		var domainErr *apperrors.DomainError
		if !errors.As(err, &domainErr) || domainErr.Code != "UNAUTHENTICATED" {
			t.Errorf("SignIn(%q) err = %v, want UNAUTHENTICATED", tc.email, err)
		}
		if token != "" {
			t.Errorf("SignIn(%q) issued a token on failure", tc.email)
		}
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, identities, _, _ := newIdentityServiceForTest()
	ctx := context.Background()

	identity := seedIdentity(t, identities, "alice@example.com", "old-secret")

	token, err := svc.RequestPasswordReset(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, token.Token, "new-secret"); err != nil {
		t.Fatalf("ConfirmPasswordReset: %v", err)
	}

	stored, _ := identities.GetByID(ctx, identity.ID)
	if err := auth.ComparePassword(stored.PasswordHash, "new-secret"); err != nil {
		t.Error("new password does not verify after reset")
	}
	if err := auth.ComparePassword(stored.PasswordHash, "old-secret"); err == nil {
		t.Error("old password still verifies after reset")
	}

	// Replaying the same token must fail.
	if err := svc.ConfirmPasswordReset(ctx, token.Token, "another"); err == nil {
		t.Error("expected error reusing a consumed reset token")
	}
}
