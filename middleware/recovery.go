package middleware

import (
	"microcourses/helper"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Recovery turns panics into the standard 500 envelope.
func Recovery(h *helper.HTTPHelper) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.SendInternalError(c, errors.Errorf("panic: %v", recovered))
	})
}
