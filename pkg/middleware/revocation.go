package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// RevokedTokenKey is the Redis key under which a signed-out token is parked
// until its natural expiry.
func RevokedTokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedTokenPrefix + hex.EncodeToString(sum[:])
}

// TokenRevocationMiddleware rejects tokens that were invalidated by sign-out.
// Must run after AuthMiddleware, which stores the raw token in the context.
func TokenRevocationMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("token")
		if token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		exists, err := redisClient.Exists(ctx, RevokedTokenKey(token)).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token check failed"})
			c.Abort()
			return
		}

		if exists > 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			c.Abort()
			return
		}

		c.Next()
	}
}
