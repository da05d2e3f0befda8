package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie name clients depend on.
const CookieName = "jwt"

var expiredCookieTime = time.Unix(0, 0).UTC()

// CookieTransport moves session tokens in and out of HTTP cookies.
type CookieTransport struct {
	domain string
	path   string
}

// NewCookieTransport builds a transport scoped to domain and path.
func NewCookieTransport(domain, path string) *CookieTransport {
	if path == "" {
		path = "/"
	}
	return &CookieTransport{domain: domain, path: path}
}

// Attach sets the session cookie on the response. The cookie expires with the token.
func (t *CookieTransport) Attach(c *fiber.Ctx, token Token) {
	c.Cookie(t.cookie(token.Raw, token.ExpiresAt))
}

// Clear overwrites the client's cookie with an empty, already expired value.
// The signed token itself stays valid until it expires.
func (t *CookieTransport) Clear(c *fiber.Ctx) {
	c.Cookie(t.cookie("", expiredCookieTime))
}

// Extract returns the raw token from the request cookie, or "".
func (t *CookieTransport) Extract(c *fiber.Ctx) string {
	return c.Cookies(CookieName)
}

func (t *CookieTransport) cookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     t.path,
		Domain:   t.domain,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
