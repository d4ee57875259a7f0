package fetchtest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the gin context key RequireJWT stores the token claims under.
const ClaimsKey = "claims"

// RequireJWT rejects requests that do not carry an HMAC-signed bearer JWT
// verifiable with secret. Rejections are 401 {"message","errors"}.
func RequireJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireBearer rejects requests whose bearer token is not token.
func RequireBearer(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+token {
			unauthorized(c, "invalid bearer token")
			return
		}
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "unauthorized",
		"errors":  []string{reason},
	})
}
