package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"business-directory-service/internal/model"
)

func rolesTestRouter(identity *model.Identity, allowed ...model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attach := func(c *gin.Context) {
		if identity != nil {
			c.Set(identityKey, *identity)
		}
		c.Next()
	}
	r.GET("/op", attach, RequireRoles(allowed...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		identity   *model.Identity
		allowed    []model.Role
		wantStatus int
	}{
		{
			name:       "role in allowlist",
			identity:   &model.Identity{UserID: 1, Role: model.RoleAdmin},
			allowed:    []model.Role{model.RoleBusinessOwner, model.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "role not in allowlist",
			identity:   &model.Identity{UserID: 1, Role: model.RoleUser},
			allowed:    []model.Role{model.RoleBusinessOwner, model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "single-role allowlist",
			identity:   &model.Identity{UserID: 1, Role: model.RoleBusinessOwner},
			allowed:    []model.Role{model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no identity attached",
			identity:   nil,
			allowed:    []model.Role{model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rolesTestRouter(tt.identity, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/op", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
