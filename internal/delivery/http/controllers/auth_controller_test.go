package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsmanager/internal/delivery/http/helpers"
	"eventsmanager/internal/domain"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	registerUser  *domain.User
	registerToken string
	registerErr   error
	lastUsername  string
	lastEmail     string
	lastPassword  string

	loginToken string
	loginUser  *domain.User
	loginErr   error
}

func (f *fakeAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	f.lastUsername = username
	f.lastEmail = email
	f.lastPassword = password
	return f.registerUser, f.registerToken, f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	f.lastUsername = username
	f.lastPassword = password
	return f.loginToken, f.loginUser, f.loginErr
}

func sampleUser() *domain.User {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:        "user-1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAuthController_Register(t *testing.T) {
	body := []byte(`{"username":"alice","email":"alice@example.com","password":"s3cret"}`)

	t.Run("success returns user and token", func(t *testing.T) {
		svc := &fakeAuthService{registerUser: sampleUser(), registerToken: "tok-123"}
		c := NewAuthController(testLogger, svc)

		rr := httptest.NewRecorder()
		c.Register(rr, httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice", svc.lastUsername)

		var resp RegisterUserSuccessResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "user-1", resp.Data.ID)
		assert.Equal(t, "tok-123", resp.Data.Token)
		// Password hash and salt never serialize.
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})
		rr := httptest.NewRecorder()
		c.Register(rr, httptest.NewRequest(http.MethodPost, "/api/register/",
			bytes.NewReader([]byte(`{"username":"alice"}`))))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeEnvelope(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
		assert.Contains(t, resp.Error.Message, "all fields are required")
	})

	t.Run("invalid email is 400", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})
		rr := httptest.NewRecorder()
		c.Register(rr, httptest.NewRequest(http.MethodPost, "/api/register/",
			bytes.NewReader([]byte(`{"username":"alice","email":"nope","password":"pw"}`))))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate user is 400 with conflict code", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{registerErr: domain.ErrDuplicateUser})
		rr := httptest.NewRecorder()
		c.Register(rr, httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader(body)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeEnvelope(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
	})

	t.Run("unexpected error is 500", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{registerErr: errors.New("db down")})
		rr := httptest.NewRecorder()
		c.Register(rr, httptest.NewRequest(http.MethodPost, "/api/register/", bytes.NewReader(body)))
		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestAuthController_Token(t *testing.T) {
	body := []byte(`{"username":"alice","password":"s3cret"}`)

	t.Run("success returns token, user_id, and email", func(t *testing.T) {
		svc := &fakeAuthService{loginToken: "tok-123", loginUser: sampleUser()}
		c := NewAuthController(testLogger, svc)

		rr := httptest.NewRecorder()
		c.Token(rr, httptest.NewRequest(http.MethodPost, "/api/token/", bytes.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp TokenSuccessResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "tok-123", resp.Data.Token)
		assert.Equal(t, "user-1", resp.Data.UserID)
		assert.Equal(t, "alice@example.com", resp.Data.Email)
	})

	t.Run("bad credentials is 401", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{loginErr: domain.ErrInvalidCredentials})
		rr := httptest.NewRecorder()
		c.Token(rr, httptest.NewRequest(http.MethodPost, "/api/token/", bytes.NewReader(body)))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeEnvelope(t, rr)
		require.NotNil(t, resp.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("missing fields is 400", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{})
		rr := httptest.NewRecorder()
		c.Token(rr, httptest.NewRequest(http.MethodPost, "/api/token/",
			bytes.NewReader([]byte(`{"username":"alice"}`))))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unexpected error is 500", func(t *testing.T) {
		c := NewAuthController(testLogger, &fakeAuthService{loginErr: errors.New("db down")})
		rr := httptest.NewRecorder()
		c.Token(rr, httptest.NewRequest(http.MethodPost, "/api/token/", bytes.NewReader(body)))
		require.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
