package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/users-api/internal/api/cookies"
	"github.com/jobboard/users-api/internal/api/middleware"
	"github.com/jobboard/users-api/internal/core/domain"
	"github.com/jobboard/users-api/internal/core/ports"
)

const testCookieSecret = "cookie-secret"

type stubAuthService struct {
	validateFn func(ctx context.Context, email, password string) (*domain.Identity, error)
	signInFn   func(ctx context.Context, email, password string) (string, *domain.Identity, error)
}

func (s *stubAuthService) Validate(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.validateFn(ctx, email, password)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.signInFn(ctx, email, password)
}

type stubUserService struct {
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id int) (*domain.User, error)
	updateFn func(ctx context.Context, actor domain.Identity, id int, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actor domain.Identity, id int) error
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, id int) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, actor domain.Identity, id int, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, actor domain.Identity, id int) error {
	return s.deleteFn(ctx, actor, id)
}

type stubTokenService struct {
	issueFn  func(identity domain.Identity) (string, error)
	verifyFn func(token string) (domain.Identity, error)
}

func (s *stubTokenService) Issue(identity domain.Identity) (string, error) {
	return s.issueFn(identity)
}

func (s *stubTokenService) Verify(token string) (domain.Identity, error) {
	return s.verifyFn(token)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookies.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	auth := &stubAuthService{
		signInFn: func(_ context.Context, email, password string) (string, *domain.Identity, error) {
			if email != "john@example.com" || password != "Testy123!" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "issued-token", &domain.Identity{ID: 1, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, testCookieSecret)

	c, rec := newTestContext(t, http.MethodPost, "/auth/sign-in", `{"email":"john@example.com","password":"Testy123!"}`)
	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["accessToken"] != "issued-token" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if v, ok := cookies.Unsign(cookie.Value, testCookieSecret); !ok || v != "issued-token" {
		t.Fatalf("cookie does not carry the signed token: %s", cookie.Value)
	}
	if !cookie.HttpOnly || cookie.MaxAge != 86400 {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	auth := &stubAuthService{
		signInFn: func(context.Context, string, string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, &stubUserService{}, testCookieSecret)

	c, rec := newTestContext(t, http.MethodPost, "/auth/sign-in", `{"email":"john@example.com","password":"wrong"}`)
	err := h.SignIn(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cookie := sessionCookie(t, rec); cookie != nil {
		t.Fatalf("cookie set on failed sign-in")
	}
}

func TestAuthHandler_SignIn_ValidationAggregatesFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, testCookieSecret)

	c, _ := newTestContext(t, http.MethodPost, "/auth/sign-in", `{"email":"not-an-email","password":""}`)
	err := h.SignIn(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 field entries, got %+v", ve.Fields)
	}
	paths := map[string]bool{}
	for _, f := range ve.Fields {
		paths[f.Path] = true
	}
	if !paths["email"] || !paths["password"] {
		t.Fatalf("expected email and password paths, got %+v", ve.Fields)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	users := &stubUserService{
		getFn: func(_ context.Context, id int) (*domain.User, error) {
			if id != 7 {
				t.Fatalf("unexpected id: %d", id)
			}
			return &domain.User{ID: 7, FirstName: "John", LastName: "Doe", Email: "john@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, testCookieSecret)

	c, rec := newTestContext(t, http.MethodGet, "/auth/profile", "")
	middleware.SetIdentity(c, domain.Identity{ID: 7, Role: domain.RoleUser})

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["fullName"] != "John Doe" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, leaked := resp["passwordHash"]; leaked {
		t.Fatalf("password hash leaked: %+v", resp)
	}
}

// The token can outlive the account it was issued for.
func TestAuthHandler_Profile_UserGone(t *testing.T) {
	users := &stubUserService{
		getFn: func(context.Context, int) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(&stubAuthService{}, users, testCookieSecret)

	c, _ := newTestContext(t, http.MethodGet, "/auth/profile", "")
	middleware.SetIdentity(c, domain.Identity{ID: 7, Role: domain.RoleUser})

	if err := h.Profile(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubUserService{}, testCookieSecret)

	c, rec := newTestContext(t, http.MethodPost, "/auth/sign-out", "")
	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatalf("clearing cookie not set")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("cookie not cleared: %+v", cookie)
	}
}
