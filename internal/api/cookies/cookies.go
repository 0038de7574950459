// Package cookies manages the signed session cookie. The cookie value is an
// HMAC-SHA256 envelope ("s:<token>.<signature>") so a tampered cookie is
// rejected before the JWT inside it is ever parsed. The envelope signature is
// distinct from the JWT signature: the former authenticates the cookie
// transport, the latter the session claims.
package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "jwt"

// SessionMaxAge is how long the session cookie lives.
const SessionMaxAge = 86400 * time.Second

const signedPrefix = "s:"

// Sign wraps a value in the signed envelope.
func Sign(value, secret string) string {
	return signedPrefix + value + "." + signature(value, secret)
}

// Unsign verifies the envelope and returns the inner value. It reports false
// for a missing prefix, a truncated envelope or a signature mismatch.
func Unsign(envelope, secret string) (string, bool) {
	raw, ok := strings.CutPrefix(envelope, signedPrefix)
	if !ok {
		return "", false
	}
	value, sig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", false
	}
	expected := signature(value, secret)
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", false
	}
	return value, true
}

func signature(value, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SetSession attaches a signed session cookie carrying the token.
func SetSession(c echo.Context, token, secret string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    Sign(token, secret),
		Path:     "/",
		MaxAge:   int(SessionMaxAge / time.Second),
		HttpOnly: true,
	})
}

// ClearSession replaces the session cookie with an already-expired one.
func ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

// ReadSession extracts and unsigns the session cookie from the request.
// It reports false when the cookie is absent or its signature does not verify.
func ReadSession(c echo.Context, secret string) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	return Unsign(cookie.Value, secret)
}
