package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/cookies"
	"github.com/jobboard/users-api/internal/api/metrics"
	"github.com/jobboard/users-api/internal/api/middleware"
	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

// AuthHandler serves sign-in, sign-out and the current-user profile.
type AuthHandler struct {
	authService  ports.AuthService
	userService  ports.UserService
	cookieSecret string
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService, cookieSecret string) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, cookieSecret: cookieSecret}
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	AccessToken string `json:"accessToken"`
}

// SignIn authenticates a user, sets the signed session cookie and returns
// the token for bearer clients.
//
// @Summary      Sign in
// @Description  Sign in with email and password. A signed session cookie is set.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()

	cookies.SetSession(c, token, h.cookieSecret)
	return c.JSON(http.StatusOK, signInResponse{AccessToken: token})
}

// Profile returns the record of the authenticated user.
//
// @Summary      Get current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrTokenInvalid
	}

	// The token may outlive the account it was issued for.
	user, err := h.userService.Get(c.Request().Context(), identity.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SignOut clears the session cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	cookies.ClearSession(c)
	return c.NoContent(http.StatusNoContent)
}
