package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/service"
)

// AuthHandler exposes sign-up, login and password reset endpoints.
type AuthHandler struct {
	identity     *service.IdentityService
	cookieSecure bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{identity: identity, cookieSecure: cookieSecure}
}

// SignUp handles POST /auth/signup. The account starts Unverified with
// the Viewer role and no session is issued.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	profile, err := h.identity.SignUp(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(*profile),
	})
}

// Login handles POST /auth/login. Unverified accounts are rejected and
// no session cookie is set.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	profile, token, exp, err := h.identity.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		h.clearSession(c)
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(*profile),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout by clearing the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.identity.Logout(c.Context(), auth.SessionToken(c))
	h.clearSession(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// Me handles GET /auth/me with the resolved identity and profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not authenticated")
	}
	response := fiber.Map{
		"identity": fiber.Map{
			"id":    principal.Identity.ID,
			"email": principal.Identity.Email,
		},
	}
	if principal.Profile != nil {
		response["profile"] = dto.NewUserResponse(*principal.Profile)
	}
	return c.JSON(fiber.Map{"data": response})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	// Token delivery happens out of band; an unknown email answers the
	// same as a known one so addresses cannot be probed.
	if _, err := h.identity.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new_password required")
	}

	if err := h.identity.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"ok": true}})
}

func (h *AuthHandler) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
