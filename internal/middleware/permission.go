package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/permission"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

// RequireModule 模块权限中间件
// 必须在 JWTAuth 之后使用；当前用户没有对应模块时拒绝访问
func RequireModule(db *gorm.DB, moduleCode string) gin.HandlerFunc {
	permissionService := permission.NewPermissionService(db)

	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage("未登录"),
			))
			c.Abort()
			return
		}

		hasAccess, err := permissionService.HasModuleAccess(identity.ID, moduleCode)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("权限检查失败"),
			))
			c.Abort()
			return
		}
		if !hasAccess {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("没有该模块的访问权限"),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
