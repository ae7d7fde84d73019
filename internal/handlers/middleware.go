package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const userIdCtxKey = "userId"

// userIdMiddleware guards the protected API group: requests without a valid
// Bearer token are rejected before any handler runs.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or malformed Authorization header",
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIdCtxKey, userId)
	c.Next()
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// currentUserID reads the user id stored by userIdMiddleware.
func currentUserID(c *gin.Context) int {
	return c.GetInt(userIdCtxKey)
}
