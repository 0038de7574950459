package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/cookies"
	"github.com/jobboard/users-api/internal/api/metrics"
	"github.com/jobboard/users-api/internal/api/middleware"
	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

// UserHandler serves user CRUD. Mutations are gated by the ownership-or-admin
// rule inside the service; the handler's own responsibility is session cookie
// upkeep when a user touches their own record.
type UserHandler struct {
	userService  ports.UserService
	tokens       ports.TokenService
	cookieSecret string
}

func NewUserHandler(userService ports.UserService, tokens ports.TokenService, cookieSecret string) *UserHandler {
	return &UserHandler{userService: userService, tokens: tokens, cookieSecret: cookieSecret}
}

// Create registers a new user.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get returns a single user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update. When a user updates their own record, a
// fresh token reflecting the post-update identity is issued and the session
// cookie replaced; updates by another actor leave the cookie alone.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrTokenInvalid
	}

	id, err := userID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), actor, id, toUpdateInput(req))
	if err != nil {
		if err == domain.ErrForbidden {
			metrics.AuthzDenialsTotal.WithLabelValues("update").Inc()
		}
		return err
	}

	if actor.ID == user.ID {
		token, err := h.tokens.Issue(domain.Identity{ID: user.ID, Role: user.Role})
		if err != nil {
			return err
		}
		cookies.SetSession(c, token, h.cookieSecret)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user. Deleting one's own account clears the session
// cookie; deleting someone else's does not.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrTokenInvalid
	}

	id, err := userID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), actor, id); err != nil {
		if err == domain.ErrForbidden {
			metrics.AuthzDenialsTotal.WithLabelValues("delete").Inc()
		}
		return err
	}

	if actor.ID == id {
		cookies.ClearSession(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func userID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "user id must be numeric")
	}
	return id, nil
}
