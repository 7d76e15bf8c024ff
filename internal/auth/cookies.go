package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieSettings controls attributes of the credential cookies.
type CookieSettings struct {
	Secure bool
	Domain string
}

// SetCredentialCookie attaches an http-only, same-site-lax cookie living until expiresAt.
func SetCredentialCookie(c *fiber.Ctx, settings CookieSettings, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   settings.Domain,
		MaxAge:   maxAge,
		Expires:  expiresAt,
		Secure:   settings.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCredentialCookies expires both credential cookies.
func ClearCredentialCookies(c *fiber.Ctx, settings CookieSettings) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   settings.Domain,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0).UTC(),
			Secure:   settings.Secure,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
