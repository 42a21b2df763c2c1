package module

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/permission"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type ModuleHandler struct {
	moduleRepo        *ModuleRepository
	permissionService *permission.PermissionService
}

func NewModuleHandler(db *gorm.DB) *ModuleHandler {
	return &ModuleHandler{
		moduleRepo:        NewModuleRepository(db),
		permissionService: permission.NewPermissionService(db),
	}
}

// List 模块列表（后台用户管理页的分配选项）
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.moduleRepo.List()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取模块列表失败"),
		))
		return
	}
	dto.SuccessResponse(c, modules)
}

// Mine 当前用户拥有的模块 code 列表（前端据此渲染后台菜单）
func (h *ModuleHandler) Mine(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}

	codes, err := h.permissionService.GetUserModules(identity.ID)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取用户模块失败"),
		))
		return
	}
	dto.SuccessResponse(c, codes)
}
