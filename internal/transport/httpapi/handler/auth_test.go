package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carteira-app/carteira/internal/gateway/bankapi"
	"github.com/carteira-app/carteira/internal/platform/session"
	"github.com/carteira-app/carteira/internal/transport/httpapi/handler"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (session.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockSessionService) Signup(ctx context.Context, name, email, password string) (session.Session, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLogin_ReturnsSessionIDNotToken(t *testing.T) {
	svc := new(MockSessionService)
	sess := session.Session{
		ID:        uuid.New(),
		AccountID: "acc-1",
		Token:     "backend-jwt-secret",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	svc.On("Login", mock.Anything, "ana@example.com", "segredo").Return(sess, nil)

	h := handler.NewAuthHandler(svc)
	rec := postJSON(t, h.Login, "/api/v1/auth/login", handler.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sess.ID.String(), resp.SessionID)
	assert.Equal(t, "acc-1", resp.AccountID)
	// The backend JWT must never reach the client
	assert.NotContains(t, rec.Body.String(), "backend-jwt-secret")
}

func TestLogin_MissingFields(t *testing.T) {
	h := handler.NewAuthHandler(new(MockSessionService))

	rec := postJSON(t, h.Login, "/api/v1/auth/login", handler.LoginRequest{Password: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Login, "/api/v1/auth/login", handler.LoginRequest{Email: "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("Login", mock.Anything, "ana@example.com", "errada").
		Return(session.Session{}, &bankapi.APIError{StatusCode: http.StatusUnauthorized})

	h := handler.NewAuthHandler(svc)
	rec := postJSON(t, h.Login, "/api/v1/auth/login", handler.LoginRequest{
		Email:    "ana@example.com",
		Password: "errada",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_BackendDown(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("Login", mock.Anything, "ana@example.com", "segredo").
		Return(session.Session{}, assert.AnError)

	h := handler.NewAuthHandler(svc)
	rec := postJSON(t, h.Login, "/api/v1/auth/login", handler.LoginRequest{
		Email:    "ana@example.com",
		Password: "segredo",
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSignup_Created(t *testing.T) {
	svc := new(MockSessionService)
	sess := session.Session{ID: uuid.New(), AccountID: "acc-2"}
	svc.On("Signup", mock.Anything, "Ana", "ana@example.com", "segredo").Return(sess, nil)

	h := handler.NewAuthHandler(svc)
	rec := postJSON(t, h.Signup, "/api/v1/auth/signup", handler.SignupRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "segredo",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("Signup", mock.Anything, "Ana", "ana@example.com", "segredo").
		Return(session.Session{}, &bankapi.APIError{StatusCode: http.StatusConflict})

	h := handler.NewAuthHandler(svc)
	rec := postJSON(t, h.Signup, "/api/v1/auth/signup", handler.SignupRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "segredo",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}
