package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"setflow/internal/domain"
	"setflow/internal/handler"
	"setflow/internal/service"
	"setflow/mocks"
)

func newInviteHandler() (*handler.InviteHandler, *mocks.MockInviteService) {
	inviteSvc := new(mocks.MockInviteService)
	h := handler.NewInviteHandler(inviteSvc)
	return h, inviteSvc
}

func TestInviteCreate_Success(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	orgID := uuid.New()
	memberID := uuid.New()

	output := &service.InviteOutput{
		Invite: &domain.Invite{
			ID:     uuid.New(),
			OrgID:  orgID,
			Email:  "joao@freelance.com",
			Role:   domain.RoleFreelancer,
			Status: domain.InviteStatusPending,
		},
		Link: "https://app.example.com/invites/accept?token=abc",
	}

	inviteSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.Claims"), service.CreateInviteInput{
		Email: "joao@freelance.com",
		Role:  domain.RoleFreelancer,
	}).Return(output, nil)

	body, _ := json.Marshal(map[string]string{
		"email": "joao@freelance.com",
		"role":  "freelancer",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, orgID, memberID, domain.RoleAdmin)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	inviteSvc.AssertExpectations(t)
}

func TestInviteCreate_SeatLimitExceeded(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	orgID := uuid.New()
	memberID := uuid.New()

	inviteSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.Claims"), mock.AnythingOfType("service.CreateInviteInput")).
		Return(nil, domain.ErrSeatLimitExceeded)

	body, _ := json.Marshal(map[string]string{
		"email": "extra@freelance.com",
		"role":  "freelancer",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, orgID, memberID, domain.RoleAdmin)

	h.Create(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "SEAT_LIMIT_EXCEEDED", resp.Error.Code)
}

func TestInviteCreate_DuplicatePending(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	inviteSvc.On("Create", mock.Anything, mock.AnythingOfType("*service.Claims"), mock.AnythingOfType("service.CreateInviteInput")).
		Return(nil, domain.ErrDuplicateInvite)

	body, _ := json.Marshal(map[string]string{
		"email": "joao@freelance.com",
		"role":  "freelancer",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), uuid.New(), domain.RoleProducer)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInviteAccept_Success(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	orgID := uuid.New()
	member := &domain.Member{
		ID:            uuid.New(),
		OrgID:         orgID,
		Email:         "joao@freelance.com",
		FullName:      "Joao Souza",
		EffectiveRole: domain.RoleFreelancer,
		IsActive:      true,
	}

	inviteSvc.On("Accept", mock.Anything, service.AcceptInviteInput{
		Token:    "rawtoken",
		FullName: "Joao Souza",
		Password: "securepassword123",
	}).Return(member, nil)

	body, _ := json.Marshal(map[string]string{
		"token":     "rawtoken",
		"full_name": "Joao Souza",
		"password":  "securepassword123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Accept(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	inviteSvc.AssertExpectations(t)
}

func TestInviteAccept_Expired(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	inviteSvc.On("Accept", mock.Anything, mock.AnythingOfType("service.AcceptInviteInput")).
		Return(nil, domain.ErrInviteExpired)

	body, _ := json.Marshal(map[string]string{
		"token":     "staletoken",
		"full_name": "Joao Souza",
		"password":  "securepassword123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Accept(c)

	assert.Equal(t, http.StatusGone, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "INVITE_EXPIRED", resp.Error.Code)
}

func TestInviteAccept_InvalidToken(t *testing.T) {
	h, inviteSvc := newInviteHandler()

	inviteSvc.On("Accept", mock.Anything, mock.AnythingOfType("service.AcceptInviteInput")).
		Return(nil, domain.ErrInviteTokenInvalid)

	body, _ := json.Marshal(map[string]string{
		"token":     "bogus",
		"full_name": "Joao Souza",
		"password":  "securepassword123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites/accept", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Accept(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInviteRevoke_InvalidID(t *testing.T) {
	h, _ := newInviteHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invites/not-a-uuid/revoke", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), uuid.New(), domain.RoleAdmin)

	h.Revoke(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
