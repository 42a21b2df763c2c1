package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/notify"
)

type UserHandler struct {
	userService *UserService
}

func NewUserHandler(db *gorm.DB, notifier notify.Notifier) *UserHandler {
	return &UserHandler{
		userService: NewUserService(db, notifier),
	}
}

// List 用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, bizErr := h.userService.List()
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, users)
}

// Get 用户详情
func (h *UserHandler) Get(c *gin.Context) {
	detail, bizErr := h.userService.Get(c.Param("id"))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, detail)
}

// Create 创建用户
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	created, bizErr := h.userService.Create(req, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, created)
}

// Update 更新用户
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	updated, bizErr := h.userService.Update(c.Param("id"), req, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, updated)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	if bizErr := h.userService.Delete(c.Param("id"), middleware.CurrentIdentity(c)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, nil)
}
