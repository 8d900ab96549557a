package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/domain"
	"setflow/internal/handler"
	"setflow/internal/service"
	"setflow/mocks"
)

func TestLogin_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	pair := &service.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}
	authSvc.On("Login", mock.Anything, service.LoginInput{
		OrgSlug:  "luma-films",
		Email:    "ana@lumafilms.com",
		Password: "securepassword123",
	}).Return(pair, nil)

	body, _ := json.Marshal(map[string]string{
		"org_slug": "luma-films",
		"email":    "ana@lumafilms.com",
		"password": "securepassword123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	authSvc.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	authSvc.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).
		Return(nil, domain.ErrInvalidCredentials)

	body, _ := json.Marshal(map[string]string{
		"org_slug": "luma-films",
		"email":    "ana@lumafilms.com",
		"password": "wrongpassword",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	body, _ := json.Marshal(map[string]string{"email": "ana@lumafilms.com"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshToken_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	pair := &service.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	authSvc.On("RefreshToken", mock.Anything, "old-refresh").Return(pair, nil)

	body, _ := json.Marshal(map[string]string{"refresh_token": "old-refresh"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	authSvc.AssertExpectations(t)
}

func TestRegister_Disabled(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	body, _ := json.Marshal(map[string]string{
		"org_name":  "Luma Films",
		"org_slug":  "luma-films",
		"email":     "ana@lumafilms.com",
		"password":  "securepassword123",
		"full_name": "Ana Ribeiro",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
