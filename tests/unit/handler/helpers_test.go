package handler_test

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"setflow/internal/domain"
	"setflow/internal/middleware"
	"setflow/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setAuthContext injects the context values the auth middleware would set.
func setAuthContext(c *gin.Context, orgID, memberID uuid.UUID, role domain.Role) {
	c.Set(middleware.ContextKeyOrgID, orgID)
	c.Set(middleware.ContextKeyMemberID, memberID)
	c.Set(middleware.ContextKeyRole, string(role))
	c.Set(middleware.ContextKeyClaims, &service.Claims{
		OrgID:    orgID,
		MemberID: memberID,
		Role:     role,
	})
}
