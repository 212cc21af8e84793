package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/middleware"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

// MustGetRole extracts the actor role injected by the Actor middleware.
// On ok=false a 401 has already been written; callers should return.
func MustGetRole(c *gin.Context) (workflow.Role, bool) {
	v, exists := c.Get(middleware.ActorRoleKey)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	role, ok := v.(workflow.Role)
	if !ok || role == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return role, true
}

// MustGetUserID extracts the actor's user ID.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ActorIDKey)
	if !exists {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "unauthenticated")
		return "", false
	}
	return s, true
}

// aggregateQuery pulls the department/year pair every aggregate-scoped
// read takes as query parameters.
func aggregateQuery(c *gin.Context) (departmentID, academicYearID string, ok bool) {
	departmentID = c.Query("department_id")
	academicYearID = c.Query("academic_year_id")
	if departmentID == "" || academicYearID == "" {
		response.BadRequest(c, 10001, "department_id and academic_year_id are required")
		return "", "", false
	}
	return departmentID, academicYearID, true
}
