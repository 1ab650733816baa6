package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gatekeeper/api/utils"
)

type AuthHandlers struct {
	Guard     *utils.AccessGuard
	JWTSecret []byte
}

func NewAuthHandlers(guard *utils.AccessGuard, jwtSecret []byte) *AuthHandlers {
	return &AuthHandlers{Guard: guard, JWTSecret: jwtSecret}
}

type adminLoginRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// AdminLogin exchanges the shared admin secret for a short-lived session
// token, so the secret itself does not ride along on every mutation.
func (h *AuthHandlers) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !h.Guard.Authorize(req.Secret) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if len(h.JWTSecret) == 0 {
		log.Println("AdminLogin: JWT_SECRET_KEY not configured, cannot issue session tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session tokens are not configured"})
		return
	}

	tokenString, err := utils.GenerateAdminToken(h.JWTSecret)
	if err != nil {
		log.Printf("ERROR: Failed to generate admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}
