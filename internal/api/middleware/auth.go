package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/metrics"
	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

const identityKey = "auth.identity"

// IdentityFrom returns the authenticated identity injected by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

// SetIdentity attaches an identity to the request context. Used by Auth and
// by handler tests.
func SetIdentity(c echo.Context, identity domain.Identity) {
	c.Set(identityKey, identity)
}

// Auth is the single authorization gate, applied globally before any handler
// runs. Routes registered as public in the policy pass through with a
// best-effort identity: a valid token attaches one, a missing or invalid
// token is ignored. Every other route requires extraction and verification
// to succeed.
//
// Extraction prefers the signed session cookie over the bearer header, so
// browser clients and API clients can share endpoints.
func Auth(policy *AccessPolicy, tokens ports.TokenService, cookieSecret string) echo.MiddlewareFunc {
	extractors := []TokenExtractor{
		CookieExtractor(cookieSecret),
		BearerExtractor,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			public := policy.IsPublic(c.Request().Method, c.Path())

			raw, found := extractToken(c, extractors)
			if !found {
				if public {
					return next(c)
				}
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return domain.ErrTokenInvalid
			}

			identity, err := tokens.Verify(raw)
			if err != nil {
				if public {
					// A public route's decision is unaffected by a bad token.
					return next(c)
				}
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			SetIdentity(c, identity)
			return next(c)
		}
	}
}
