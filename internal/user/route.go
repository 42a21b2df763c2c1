package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/middleware"
	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/notify"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB, notifier notify.Notifier) {
	userHandler := NewUserHandler(db, notifier)

	users := r.Group("/users")
	users.Use(middleware.JWTAuth(), middleware.RequireModule(db, moduleModel.CodeUserManage))
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.POST("", userHandler.Create)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}
}
