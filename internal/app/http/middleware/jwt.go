package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"catalog-app/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// AuthMiddleware resolves the caller from a bearer token. Requests without an
// Authorization header continue as guests; a bad token is rejected.
func AuthMiddleware(secret string) gin.HandlerFunc {
	jwtKey := []byte(secret)
	return func(c *gin.Context) {
		if len(jwtKey) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
			return
		}
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			SetIdentity(c, access.Identity{Role: access.RoleGuest})
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed"})
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(tokenString), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		id := access.Identity{Role: access.RoleGuest}
		if userID, ok := claims["user_id"].(float64); ok && userID > 0 {
			id.UserID = int64(userID)
			if role, ok := claims["role"].(string); ok {
				id.Role = access.ParseRole(role)
			}
		}
		SetIdentity(c, id)
		c.Next()
	}
}

// RequireRole rejects callers below min. Guests get 401, others 403.
func RequireRole(min access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.Role == access.RoleGuest {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}
		if !id.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

func SetIdentity(c *gin.Context, id access.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller, or a guest when no identity was set.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Identity{Role: access.RoleGuest}
}
