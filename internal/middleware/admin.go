package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminKeyMiddleware guards the catalog-curation endpoints. The presented
// X-Admin-Key header is compared against a bcrypt hash from configuration;
// an empty hash disables the admin surface entirely.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access is disabled"})
			c.Abort()
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing admin key"})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid admin key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
