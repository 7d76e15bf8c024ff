package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/behnamfe76/finance-service/internal/api/dto"
	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/service"
)

// AuthHandler exposes the cookie-based credential endpoints and registration.
type AuthHandler struct {
	auth    *service.AuthService
	cookies auth.CookieSettings
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies auth.CookieSettings) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, creds, err := h.auth.Login(c.UserContext(), req.Identifier(), req.Password)
	if err != nil {
		return err
	}

	auth.SetCredentialCookie(c, h.cookies, auth.AccessCookieName, creds.Access, creds.AccessExpiresAt)
	auth.SetCredentialCookie(c, h.cookies, auth.RefreshCookieName, creds.Refresh, creds.RefreshExpiresAt)
	return c.JSON(dto.LoginResponse{Message: "Login successful", UserID: user.ID})
}

// Refresh handles POST /api/auth/refresh. The cookie wins over the body field.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(auth.RefreshCookieName)
	if token == "" && len(c.Body()) > 0 {
		var req dto.RefreshRequest
		if err := c.BodyParser(&req); err == nil {
			token = req.Refresh
		}
	}

	access, expiresAt, err := h.auth.Refresh(c.UserContext(), token)
	if err != nil {
		return err
	}

	auth.SetCredentialCookie(c, h.cookies, auth.AccessCookieName, access, expiresAt)
	return c.JSON(dto.MessageResponse{Message: "Token refreshed"})
}

// Logout handles POST /api/auth/logout. It always succeeds and clears both cookies.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.auth.Logout(c.UserContext(), c.Cookies(auth.RefreshCookieName))
	auth.ClearCredentialCookies(c, h.cookies)
	return c.JSON(dto.MessageResponse{Message: "Logout successful"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.MeResponse{
		Authenticated: true,
		UserID:        p.UserID,
		Username:      p.Username,
		IsStaff:       p.IsStaff,
	})
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
