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

	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// newJSONContext builds an echo.Context carrying a JSON body, with the
// request validator installed.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// fakeAuthService records the last Register/Login call and returns scripted
// results.
type fakeAuthService struct {
	registeredRole string
	registerErr    error
	loginErr       error
}

func (f *fakeAuthService) Register(_ context.Context, username, _, role string) (*domain.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registeredRole = role
	return &domain.User{ID: "u1", Username: username, Roles: []string{role}}, nil
}

func (f *fakeAuthService) Login(_ context.Context, username, _, _ string) (*ports.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &ports.LoginResult{Token: "token-for-" + username, ExpiresIn: 3600000}, nil
}

func TestAuthHandler_SignupUser(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc)
	c, rec := newJSONContext(http.MethodPost, "/api/auth/signup/user", `{"username":"alice","password":"s3cret-pw"}`)

	if err := h.SignupUser(c); err != nil {
		t.Fatalf("SignupUser: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registeredRole != domain.RoleUser {
		t.Fatalf("expected USER role registration, got %q", svc.registeredRole)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not expose password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_SignupAdminRole(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc)
	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup/admin", `{"username":"root","password":"s3cret-pw"}`)

	if err := h.SignupAdmin(c); err != nil {
		t.Fatalf("SignupAdmin: %v", err)
	}
	if svc.registeredRole != domain.RoleAdmin {
		t.Fatalf("expected ADMIN role registration, got %q", svc.registeredRole)
	}
}

func TestAuthHandler_SignupShortPassword(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup/user", `{"username":"alice","password":"short"}`)

	err := h.SignupUser(c)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Messages) != 1 || !strings.Contains(ve.Messages[0], "password") {
		t.Fatalf("unexpected messages: %v", ve.Messages)
	}
}

func TestAuthHandler_SignupDuplicate(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{registerErr: domain.ErrUserExists})
	c, _ := newJSONContext(http.MethodPost, "/api/auth/signup/user", `{"username":"alice","password":"s3cret-pw"}`)

	if err := h.SignupUser(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})
	c, rec := newJSONContext(http.MethodPost, "/api/auth/login/user", `{"username":"alice","password":"s3cret-pw"}`)

	if err := h.LoginUser(c); err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body jwtResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Token != "token-for-alice" {
		t.Fatalf("unexpected token: %q", body.Token)
	}
	if body.ExpiresIn != 3600000 {
		t.Fatalf("expected expiresIn in milliseconds, got %d", body.ExpiresIn)
	}
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newJSONContext(http.MethodPost, "/api/auth/login/admin", `{"username":"alice","password":"wrong"}`)

	if err := h.LoginAdmin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
