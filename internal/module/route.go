package module

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	moduleHandler := NewModuleHandler(db)

	modules := r.Group("/modules")
	modules.Use(middleware.JWTAuth())
	{
		modules.GET("", moduleHandler.List)
		modules.GET("/mine", moduleHandler.Mine)
	}
}
