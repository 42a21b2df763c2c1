package tag

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/middleware"
	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/notify"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, notifier notify.Notifier) {
	tagHandler := NewTagHandler(db, notifier)

	tags := r.Group("/tags")
	{
		// 前台展示用，无需认证
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)

		// 管理接口需要认证 + 标签模块权限
		authRequired := tags.Group("")
		authRequired.Use(middleware.JWTAuth(), middleware.RequireModule(db, moduleModel.CodeTagManage))
		{
			authRequired.POST("", tagHandler.Create)
			authRequired.PUT("/:id", tagHandler.Update)
			authRequired.DELETE("/:id", tagHandler.Delete)
		}
	}
}
