package post

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type PostHandler struct {
	postService *PostService
}

func NewPostHandler(db *gorm.DB, notifier notify.Notifier, storage *s3.Storage) *PostHandler {
	return &PostHandler{
		postService: NewPostService(db, notifier, storage),
	}
}

// List 后台文章列表
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	result, bizErr := h.postService.List(page, pageSize)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Get 后台文章详情
func (h *PostHandler) Get(c *gin.Context) {
	result, bizErr := h.postService.Get(c.Param("id"))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Create 创建文章
func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	created, bizErr := h.postService.Create(req, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, created)
}

// Update 更新文章
func (h *PostHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	updated, bizErr := h.postService.Update(c.Param("id"), req, middleware.CurrentIdentity(c))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, updated)
}

// Delete 删除文章
func (h *PostHandler) Delete(c *gin.Context) {
	if bizErr := h.postService.Delete(c.Param("id"), middleware.CurrentIdentity(c)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, nil)
}

// ListPublished 前台文章列表
func (h *PostHandler) ListPublished(c *gin.Context) {
	page, pageSize := pagination(c)

	tagSlug := c.Query("tag")
	var result *PostListResponse
	var bizErr *response.BusinessError
	if tagSlug != "" {
		result, bizErr = h.postService.ListPublishedByTag(tagSlug, page, pageSize)
	} else {
		result, bizErr = h.postService.ListPublished(page, pageSize)
	}
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetBySlug 前台文章详情
// 阅读量在后台异步 +1，失败不影响本次响应
func (h *PostHandler) GetBySlug(c *gin.Context) {
	result, bizErr := h.postService.GetPublishedBySlug(c.Param("slug"))
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	go h.postService.IncrementViews(result.ID)

	dto.SuccessResponse(c, result)
}

func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
