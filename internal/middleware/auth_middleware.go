package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-leave/internal/auth/errors"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token and copies its claims into the
// gin context. employee_id is absent for accounts without an employee link.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "user id not found in token", nil)
			c.Abort()
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "role not found in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		if employeeID, ok := claims["employee_id"].(string); ok && employeeID != "" {
			c.Set("employee_id", employeeID)
		}

		c.Next()
	}
}
