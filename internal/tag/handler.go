package tag

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type TagHandler struct {
	tagService *TagService
}

func NewTagHandler(db *gorm.DB, notifier notify.Notifier) *TagHandler {
	return &TagHandler{
		tagService: NewTagService(db, notifier),
	}
}

// TagRequest 创建/更新标签请求
type TagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// List 获取标签列表
func (h *TagHandler) List(c *gin.Context) {
	tags, bizErr := h.tagService.List()
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, tags)
}

// Get 获取单个标签
func (h *TagHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的标签ID"),
		))
		return
	}

	t, bizErr := h.tagService.Get(uint(id))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, t)
}

// Create 创建标签
func (h *TagHandler) Create(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	t, bizErr := h.tagService.Create(req.Name, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, t)
}

// Update 更新标签
func (h *TagHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的标签ID"),
		))
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	t, bizErr := h.tagService.Update(uint(id), req.Name, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, t)
}

// Delete 删除标签
func (h *TagHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的标签ID"),
		))
		return
	}

	if bizErr := h.tagService.Delete(uint(id), middleware.CurrentIdentity(c)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, nil)
}
