package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context) (*auth.Claims, error) {
	var tokenString string

	// 优先从 cookie 中获取 access_token
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		// 如果 cookie 中没有，尝试从 Authorization header 获取
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, fmt.Errorf("未提供认证令牌")
		}

		// 验证格式: Bearer <token>
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenString = authHeader[7:]
		} else {
			return nil, fmt.Errorf("认证格式错误")
		}
	}

	claims, err := auth.ParseAccessToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("无效的认证令牌")
	}

	return claims, nil
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		// 将用户身份存入上下文
		c.Set("identity", claims.Identity())
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（不强制要求认证，但如果有token则解析）
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err == nil && claims != nil {
			c.Set("identity", claims.Identity())
		}
		// 无论是否有 token，都继续执行
		c.Next()
	}
}

// CurrentIdentity 从上下文取当前用户身份，未认证返回 nil
func CurrentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get("identity")
	if !ok {
		return nil
	}
	identity, ok := v.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
