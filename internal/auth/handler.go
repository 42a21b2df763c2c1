package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		authService: NewAuthService(db),
	}
}

// Login 登录，成功后将 access_token 写入 cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, bizErr := h.authService.Login(req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	// cookie 有效期与令牌一致
	maxAge := config.Conf.JWT.ExpireTime * 3600
	c.SetCookie("access_token", result.AccessToken, maxAge, "/", "", false, true)

	dto.SuccessResponse(c, result)
}

// Logout 登出，清除 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	dto.SuccessResponse(c, nil)
}

// Me 返回当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := c.Get("identity")
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}
	dto.SuccessResponse(c, identity)
}
