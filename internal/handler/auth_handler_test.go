package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-records/internal/models"
	appErrors "github.com/noah-isme/school-records/pkg/errors"
)

type authServiceMock struct {
	resp *models.LoginResponse
	err  error
	req  models.LoginRequest
}

func (m *authServiceMock) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.req = req
	return m.resp, m.err
}

func TestAuthHandlerLogin(t *testing.T) {
	mock := &authServiceMock{resp: &models.LoginResponse{AccessToken: "tok", TokenType: "Bearer", Role: models.RoleAdmin}}
	handler := NewAuthHandler(mock)

	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@school.local","password":"pw"}`))
	c.Request.Header.Set("User-Agent", "test-agent")
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
	assert.Equal(t, "admin@school.local", mock.req.Email)
	assert.Equal(t, "test-agent", mock.req.UserAgent)
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	handler := NewAuthHandler(&authServiceMock{err: appErrors.ErrInvalidCredentials})

	c, w := newGinContext(http.MethodPost, "/auth/login", []byte(`{"email":"admin@school.local","password":"bad"}`))
	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = newGinContext(http.MethodPost, "/auth/login", []byte(`not json`))
	handler.Login(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
