package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/propmaster/internal/auth"
	"github.com/lalith-99/propmaster/internal/models"
)

// Keys under which AuthMiddleware stores claims in gin.Context.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyName     = "name"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
	ContextKeyTenantID = "tenant_id"
)

// AuthMiddleware rejects requests without a valid bearer token and puts
// the token's claims on the context. Browsers cannot set headers on a
// websocket handshake, so a "token" query parameter is accepted too.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or malformed authorization header",
			})
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyName, claims.Name)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query("token"); q != "" {
			return q, true
		}
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole lets the request through only when the caller's role is
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, GetRole(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

func getString(c *gin.Context, key string) string {
	val, exists := c.Get(key)
	if !exists {
		return ""
	}
	s, _ := val.(string)
	return s
}

func GetUserID(c *gin.Context) string   { return getString(c, ContextKeyUserID) }
func GetEmail(c *gin.Context) string    { return getString(c, ContextKeyEmail) }
func GetTenantID(c *gin.Context) string { return getString(c, ContextKeyTenantID) }

func GetRole(c *gin.Context) models.Role {
	val, _ := c.Get(ContextKeyRole)
	role, _ := val.(models.Role)
	return role
}

// GetActor is the name written into audit entries for this request:
// the user's display name, else their email.
func GetActor(c *gin.Context) string {
	if name := getString(c, ContextKeyName); name != "" {
		return name
	}
	return GetEmail(c)
}
