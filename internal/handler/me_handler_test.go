package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/airwell/backend/internal/model"
	"github.com/airwell/backend/internal/repository"
	"github.com/airwell/backend/internal/service"
)

type mockUserRepo struct {
	findByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByLogin(ctx context.Context, login string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func TestMeHandler_Me_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:           id,
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "pbkdf2_sha256$29000$x$y",
			}, nil
		},
	}
	h := NewMeHandler(repo, &mockAuthService{})

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/me", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"username":"alice"`) {
		t.Errorf("expected username in response, got %s", body)
	}
	// PasswordHash is json:"-" and must never appear.
	if strings.Contains(body, "pbkdf2") {
		t.Errorf("response leaks password hash: %s", body)
	}
}

func TestMeHandler_Me_Unauthorized(t *testing.T) {
	h := NewMeHandler(&mockUserRepo{}, &mockAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_Me_UserNotFound(t *testing.T) {
	h := NewMeHandler(&mockUserRepo{}, &mockAuthService{})

	rec := httptest.NewRecorder()
	h.Me(rec, authedRequest(http.MethodGet, "/api/me", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestMeHandler_ChangePassword_Success(t *testing.T) {
	var capturedUserID, capturedCurrent, capturedNew string
	svc := &mockAuthService{
		changePasswordFunc: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			capturedUserID = userID
			capturedCurrent = currentPassword
			capturedNew = newPassword
			return nil
		},
	}
	h := NewMeHandler(&mockUserRepo{}, svc)

	body := `{"current_password":"old-password","new_password":"new-password"}`
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, authedRequest(http.MethodPost, "/api/me/password", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if capturedUserID != "user-1" || capturedCurrent != "old-password" || capturedNew != "new-password" {
		t.Errorf("unexpected capture: %q %q %q", capturedUserID, capturedCurrent, capturedNew)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", resp["status"])
	}
}

func TestMeHandler_ChangePassword_WrongCurrent(t *testing.T) {
	svc := &mockAuthService{
		changePasswordFunc: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			return service.ErrInvalidCredentials
		},
	}
	h := NewMeHandler(&mockUserRepo{}, svc)

	body := `{"current_password":"wrong","new_password":"new-password"}`
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, authedRequest(http.MethodPost, "/api/me/password", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_ChangePassword_ShortNew(t *testing.T) {
	svc := &mockAuthService{
		changePasswordFunc: func(ctx context.Context, userID, currentPassword, newPassword string) error {
			return service.ErrInvalidInput
		},
	}
	h := NewMeHandler(&mockUserRepo{}, svc)

	body := `{"current_password":"old-password","new_password":"short"}`
	rec := httptest.NewRecorder()
	h.ChangePassword(rec, authedRequest(http.MethodPost, "/api/me/password", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
