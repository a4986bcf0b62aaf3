package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/services"
)

const claimsContextKey = "claims"

// AuthMiddleware verifies bearer tokens issued by the login endpoint.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token and stores the claims.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := m.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(claimsContextKey, claims)
		c.Set("user_id", claims.AccountID())
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}
		if !slices.Contains(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:   services.CodeForbidden,
				Message: "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   services.CodeUnauthorized,
		Message: message,
	})
}

// teacherScope decides which roster a caller may touch. Admins see every
// teacher; a teacher sees only the roster bound to its token.
func teacherScope(c *gin.Context, teacherID string) error {
	claims, ok := GetClaims(c)
	if !ok {
		return services.ErrUnauthorized
	}
	if claims.IsAdmin() {
		return nil
	}
	if claims.TeacherID == "" || claims.TeacherID != teacherID {
		return &services.PermissionError{
			Resource: "roster",
			Action:   "access",
			Reason:   "teachers may only access their own students",
		}
	}
	return nil
}
