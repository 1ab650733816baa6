package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/utils"
)

// AdminRequired guards mutating endpoints. The caller either presents the
// shared secret in X-Admin-Secret directly, or a session token from
// /admin/login as a Bearer header. Rejections carry no detail about which
// check failed.
func AdminRequired(guard *utils.AccessGuard, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if guard.Authorize(c.GetHeader("X-Admin-Secret")) {
			c.Next()
			return
		}

		tokenString := c.GetHeader("Authorization")
		if strings.HasPrefix(tokenString, "Bearer ") {
			tokenString = tokenString[7:]
		}
		if tokenString != "" && len(jwtSecret) > 0 {
			if _, err := utils.ValidateAdminToken(jwtSecret, tokenString); err == nil {
				c.Next()
				return
			} else {
				log.Printf("AdminRequired: rejected session token: %v", err)
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
