package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kai-platform/kai-backend/internal/model"
)

const userContextKey = "user"

// RequireAuth 认证中间件。校验认证提供方签发的 Bearer JWT
// 并把用户声明放进请求上下文，缺失或无效时返回 401
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "missing or malformed Authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := parseUser(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// parseUser 校验令牌并提取用户声明
func parseUser(tokenString, secret string) (model.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return model.User{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.User{}, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.User{}, fmt.Errorf("missing subject claim")
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return model.User{ID: sub, FullName: name, Email: email}, nil
}

// CurrentUser 从上下文获取当前用户
func CurrentUser(c *gin.Context) (model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := value.(model.User)
	return user, ok
}
