package helper

import (
	"strconv"

	"microcourses/models"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserKey      = "user"
	ContextUserIDKey    = "user_id"
	ContextRoleKey      = "role"
	ContextRequestIDKey = "request_id"
)

// CurrentUser returns the authenticated user placed by the auth middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func RequestID(c *gin.Context) string {
	return c.GetString(ContextRequestIDKey)
}

// ParamID parses a positive numeric path parameter.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
