package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/cookies"
)

// TokenExtractor pulls a raw token string out of a request. Extractors are
// tried in order; the first hit wins.
type TokenExtractor func(c echo.Context) (string, bool)

// CookieExtractor reads the signed session cookie. A cookie whose envelope
// signature does not verify is treated as absent so the next extractor gets
// a chance.
func CookieExtractor(cookieSecret string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		return cookies.ReadSession(c, cookieSecret)
	}
}

// BearerExtractor reads a standard "Authorization: Bearer <token>" header.
func BearerExtractor(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func extractToken(c echo.Context, extractors []TokenExtractor) (string, bool) {
	for _, extract := range extractors {
		if token, ok := extract(c); ok {
			return token, true
		}
	}
	return "", false
}
