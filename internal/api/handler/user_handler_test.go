package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/cookies"
	"github.com/jobboard/users-api/internal/api/middleware"
	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

func staticTokens(token string) *stubTokenService {
	return &stubTokenService{
		issueFn: func(domain.Identity) (string, error) { return token, nil },
	}
}

func TestUserHandler_Create(t *testing.T) {
	users := &stubUserService{
		createFn: func(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
			if input.FirstName != "John" || input.Email != "john@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(users, staticTokens("tok"), testCookieSecret)

	body := `{"firstName":"John","lastName":"Doe","email":"john@example.com","password":"Testy123!"}`
	c, rec := newTestContext(t, http.MethodPost, "/users", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != float64(1) || resp["fullName"] != "John Doe" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestUserHandler_Create_WeakPasswordRejected(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, staticTokens("tok"), testCookieSecret)

	body := `{"firstName":"John","lastName":"Doe","email":"john@example.com","password":"alllowercase"}`
	c, _ := newTestContext(t, http.MethodPost, "/users", body)

	var ve *domain.ValidationError
	if err := h.Create(c); !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserHandler_Get_NonNumericID(t *testing.T) {
	h := NewUserHandler(&stubUserService{}, staticTokens("tok"), testCookieSecret)

	c, _ := newTestContext(t, http.MethodGet, "/users/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

// A self-update rotates the session: the response must carry a fresh signed
// cookie reflecting the post-update identity.
func TestUserHandler_Update_SelfReissuesCookie(t *testing.T) {
	users := &stubUserService{
		updateFn: func(_ context.Context, actor domain.Identity, id int, _ ports.UpdateUserInput) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "John", LastName: "Doe", Email: "john@example.com", Role: domain.RoleAdmin}, nil
		},
	}
	var issued *domain.Identity
	tokens := &stubTokenService{
		issueFn: func(identity domain.Identity) (string, error) {
			issued = &identity
			return "fresh-token", nil
		},
	}
	h := NewUserHandler(users, tokens, testCookieSecret)

	c, rec := newTestContext(t, http.MethodPut, "/users/1", `{"role":"ADMIN"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetIdentity(c, domain.Identity{ID: 1, Role: domain.RoleUser})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("expected reissued session cookie")
	}
	if v, ok := cookies.Unsign(cookie.Value, testCookieSecret); !ok || v != "fresh-token" {
		t.Fatalf("cookie does not carry fresh token: %s", cookie.Value)
	}
	// The new token must reflect the post-update role.
	if issued == nil || issued.Role != domain.RoleAdmin {
		t.Fatalf("token not minted from post-update state: %+v", issued)
	}
}

func TestUserHandler_Update_ByAdminLeavesCookieAlone(t *testing.T) {
	users := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Identity, id int, _ ports.UpdateUserInput) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "John", LastName: "Doe", Email: "john@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewUserHandler(users, staticTokens("should-not-appear"), testCookieSecret)

	c, rec := newTestContext(t, http.MethodPut, "/users/1", `{"firstName":"Johnny"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetIdentity(c, domain.Identity{ID: 2, Role: domain.RoleAdmin})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie != nil {
		t.Fatalf("cookie set for admin updating another user")
	}
}

func TestUserHandler_Update_ErrorsPassThrough(t *testing.T) {
	for _, want := range []error{domain.ErrUserNotFound, domain.ErrForbidden} {
		users := &stubUserService{
			updateFn: func(context.Context, domain.Identity, int, ports.UpdateUserInput) (*domain.User, error) {
				return nil, want
			},
		}
		h := NewUserHandler(users, staticTokens("tok"), testCookieSecret)

		c, _ := newTestContext(t, http.MethodPut, "/users/5", `{"firstName":"Johnny"}`)
		c.SetParamNames("id")
		c.SetParamValues("5")
		middleware.SetIdentity(c, domain.Identity{ID: 1, Role: domain.RoleUser})

		if err := h.Update(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestUserHandler_Delete_SelfClearsCookie(t *testing.T) {
	users := &stubUserService{
		deleteFn: func(_ context.Context, actor domain.Identity, id int) error {
			if actor.ID != 1 || id != 1 {
				t.Fatalf("unexpected delete args: actor=%d id=%d", actor.ID, id)
			}
			return nil
		},
	}
	h := NewUserHandler(users, staticTokens("tok"), testCookieSecret)

	c, rec := newTestContext(t, http.MethodDelete, "/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetIdentity(c, domain.Identity{ID: 1, Role: domain.RoleUser})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("expected clearing cookie on self-delete")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}

func TestUserHandler_Delete_OtherKeepsCookie(t *testing.T) {
	users := &stubUserService{
		deleteFn: func(context.Context, domain.Identity, int) error { return nil },
	}
	h := NewUserHandler(users, staticTokens("tok"), testCookieSecret)

	c, rec := newTestContext(t, http.MethodDelete, "/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	middleware.SetIdentity(c, domain.Identity{ID: 2, Role: domain.RoleAdmin})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie != nil {
		t.Fatalf("cookie touched for admin deleting another user")
	}
}
