package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/domain"
)

type fakeResolver struct {
	identities map[string]*domain.Identity
	profiles   map[string]*domain.AppUser
}

func (f *fakeResolver) Resolve(_ context.Context, identityID string) (*domain.Identity, *domain.AppUser, error) {
	return f.identities[identityID], f.profiles[identityID], nil
}

func newGateAppForTest(t *testing.T) (*fiber.App, *auth.TokenManager, *fakeResolver) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 60)
	resolver := &fakeResolver{
		identities: map[string]*domain.Identity{},
		profiles:   map[string]*domain.AppUser{},
	}

	app := fiber.New()
	app.Use(RouteGate(tokens, resolver, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("landing") })
	app.Get("/dashboard/overview", func(c *fiber.Ctx) error { return c.SendString("overview") })
	app.Get("/api/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	return app, tokens, resolver
}

func (f *fakeResolver) seed(id string, status domain.VerificationStatus) {
	f.identities[id] = &domain.Identity{ID: id, Email: id + "@example.com"}
	f.profiles[id] = &domain.AppUser{ID: id, Status: status}
}

func sessionRequest(t *testing.T, tokens *auth.TokenManager, method, target, identityID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if identityID != "" {
		token, _, err := tokens.GenerateToken(identityID, identityID+"@example.com")
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	}
	return req
}

func TestRouteGateRedirectsAnonymousFromDashboard(t *testing.T) {
	app, tokens, _ := newGateAppForTest(t)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/dashboard/overview", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}

func TestRouteGateRedirectsUnverifiedWithReason(t *testing.T) {
	app, tokens, resolver := newGateAppForTest(t)
	resolver.seed("u1", domain.StatusUnverified)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/dashboard/overview", "u1"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/?reason=not_verified" {
		t.Errorf("Location = %q, want /?reason=not_verified", loc)
	}
}

func TestRouteGateSendsVerifiedLandingToOverview(t *testing.T) {
	app, tokens, resolver := newGateAppForTest(t)
	resolver.seed("u1", domain.StatusVerified)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/", "u1"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard/overview" {
		t.Errorf("Location = %q, want /dashboard/overview", loc)
	}
}

func TestRouteGatePassesVerifiedDashboardNavigation(t *testing.T) {
	app, tokens, resolver := newGateAppForTest(t)
	resolver.seed("u1", domain.StatusVerified)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/dashboard/overview", "u1"))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200 pass-through", resp.StatusCode)
	}
}

func TestRouteGateLeavesAnonymousLandingAlone(t *testing.T) {
	app, tokens, _ := newGateAppForTest(t)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRouteGateExemptsAPIAndAssets(t *testing.T) {
	app, tokens, _ := newGateAppForTest(t)

	resp, err := app.Test(sessionRequest(t, tokens, fiber.MethodGet, "/api/ping", ""))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("/api/ping status = %d, want 200 without a session", resp.StatusCode)
	}

	if !gateExempt("/favicon.ico") {
		t.Error("static asset paths must bypass the gate")
	}
	if gateExempt("/dashboard/users") {
		t.Error("dashboard paths must pass through the gate")
	}
}

func TestRouteGateTreatsGarbageTokenAsAnonymous(t *testing.T) {
	app, _, _ := newGateAppForTest(t)

	req := httptest.NewRequest(fiber.MethodGet, "/dashboard/overview", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "not-a-jwt"})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}
