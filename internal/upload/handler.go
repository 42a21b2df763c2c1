package upload

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fcbarera0210/biomachinis/internal/dto"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type Handler struct {
	storage *s3.Storage
}

func NewHandler(storage *s3.Storage) *Handler {
	return &Handler{storage: storage}
}

// Upload 上传封面图，返回公开访问地址
// 大小和类型限制在这里做，存储层不关心
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("没有提供文件"),
		))
		return
	}

	if fileHeader.Size > maxFileSize {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("文件不能超过 5MB"),
		))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedMimeTypes[contentType]
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("只支持图片文件"),
		))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("读取文件失败"),
		))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("读取文件失败"),
		))
		return
	}

	key := fmt.Sprintf("covers/%s%s", uuid.NewString(), ext)

	ctx, cancel := context.WithTimeout(c, 30*time.Second)
	defer cancel()
	if err := h.storage.Put(ctx, key, contentType, data); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("上传文件失败"),
		))
		return
	}

	dto.SuccessResponse(c, UploadResponse{URL: h.storage.PublicURL(key)})
}
