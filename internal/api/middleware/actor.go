package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// Context keys injected by Actor.
const (
	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"
)

// Actor extracts the caller's identity from the X-User-ID and X-User-Role
// headers set by the authenticating gateway. Requests without a valid role
// never reach a handler.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			response.Unauthorized(c, 10002, "missing X-User-ID header")
			c.Abort()
			return
		}

		role, err := workflow.ParseRole(c.GetHeader("X-User-Role"))
		if err != nil {
			response.Unauthorized(c, 10002, "missing or unknown X-User-Role header")
			c.Abort()
			return
		}

		c.Set(ActorIDKey, userID)
		c.Set(ActorRoleKey, role)

		c.Next()
	}
}

// RoleAuth rejects callers whose role is not in the allow list. It must
// run after Actor.
func RoleAuth(allowedRoles ...workflow.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ActorRoleKey)
		if !exists {
			response.Unauthorized(c, 10002, "unauthenticated")
			c.Abort()
			return
		}

		role := v.(workflow.Role)
		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient role")
		c.Abort()
	}
}
