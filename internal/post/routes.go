package post

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/middleware"
	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
)

// SetupPostRoutes 设置文章相关路由
func SetupPostRoutes(r *gin.RouterGroup, db *gorm.DB, notifier notify.Notifier, storage *s3.Storage) {
	postHandler := NewPostHandler(db, notifier, storage)

	// 前台阅读接口，无需认证
	noticias := r.Group("/noticias")
	{
		noticias.GET("", postHandler.ListPublished)
		noticias.GET("/:slug", postHandler.GetBySlug)
	}

	// 后台管理接口，需要认证 + 新闻模块权限
	posts := r.Group("/posts")
	posts.Use(middleware.JWTAuth(), middleware.RequireModule(db, moduleModel.CodeNewsManage))
	{
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.Get)
		posts.POST("", postHandler.Create)
		posts.PUT("/:id", postHandler.Update)
		posts.DELETE("/:id", postHandler.Delete)
	}
}
