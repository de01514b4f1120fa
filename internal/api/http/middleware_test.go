package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) EnsureUser(ctx context.Context, uid, email string) (*domain.User, error) {
	args := m.Called(ctx, uid, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserService) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserService) UpdateProfile(ctx context.Context, uid, username string, avatarID int32) (*domain.User, error) {
	args := m.Called(ctx, uid, username, avatarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const testSecret = "test-secret-0123456789abcdef0123456789"

func authTestHandler(t *testing.T, userSvc *mockUserService) (http.Handler, *security.LocalVerifier) {
	t.Helper()
	verifier := security.NewLocalVerifier(testSecret)
	mw := NewAuthMiddleware(verifier, userSvc, "kiit.ac.in")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		respondWithJSON(w, http.StatusOK, map[string]string{"uid": user.UID})
	})
	return mw.Handler(next), verifier
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		handler, _ := authTestHandler(t, new(mockUserService))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		handler, _ := authTestHandler(t, new(mockUserService))
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("WrongEmailDomain", func(t *testing.T) {
		userSvc := new(mockUserService)
		handler, verifier := authTestHandler(t, userSvc)
		token, _ := verifier.GenerateToken("uid-1", "outsider@gmail.com", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "kiit.ac.in accounts")
		userSvc.AssertNotCalled(t, "EnsureUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CampusAccountPasses", func(t *testing.T) {
		userSvc := new(mockUserService)
		userSvc.On("EnsureUser", mock.Anything, "uid-1", "student@kiit.ac.in").
			Return(&domain.User{UID: "uid-1", Username: "student"}, nil)
		handler, verifier := authTestHandler(t, userSvc)
		token, _ := verifier.GenerateToken("uid-1", "student@kiit.ac.in", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "uid-1")
	})

	t.Run("LegacyHeaderAccepted", func(t *testing.T) {
		userSvc := new(mockUserService)
		userSvc.On("EnsureUser", mock.Anything, "uid-1", "student@kiit.ac.in").
			Return(&domain.User{UID: "uid-1"}, nil)
		handler, verifier := authTestHandler(t, userSvc)
		token, _ := verifier.GenerateToken("uid-1", "student@kiit.ac.in", time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("x-auth-token", token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
