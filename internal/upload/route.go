package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
)

func RegisterRoutes(r *gin.RouterGroup, storage *s3.Storage) {
	// 存储未配置时不注册上传接口
	if storage == nil {
		return
	}

	uploadHandler := NewHandler(storage)
	r.POST("/upload", middleware.JWTAuth(), uploadHandler.Upload)
}
