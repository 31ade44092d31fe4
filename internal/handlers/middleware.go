package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	errMissingAuth = "missing Authorization header"
	errAuthFormat  = "invalid Authorization header format"
	errBadToken    = "invalid or expired token"
)

// bearerUser resolves the operator behind the Authorization header.
// present is false when no header was sent; msg is set when it was rejected.
func (h *Handler) bearerUser(c *gin.Context) (userID int, present bool, msg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return 0, false, errMissingAuth
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return 0, true, errAuthFormat
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		return 0, true, errBadToken
	}
	return userID, true, ""
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	userID, _, msg := h.bearerUser(c)
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

// apiSource names the authenticated operator as an activation source.
func apiSource(c *gin.Context) string {
	return "api:user:" + strconv.Itoa(c.GetInt(userIDKey))
}
