package route

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/auth"
	"github.com/fcbarera0210/biomachinis/internal/database"
	"github.com/fcbarera0210/biomachinis/internal/middleware"
	"github.com/fcbarera0210/biomachinis/internal/module"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/post"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
	"github.com/fcbarera0210/biomachinis/internal/tag"
	"github.com/fcbarera0210/biomachinis/internal/upload"
	"github.com/fcbarera0210/biomachinis/internal/user"
)

func SetupRouter() *gin.Engine {
	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	origin := config.Conf.Server.FrontendURL
	if origin == "" {
		origin = os.Getenv("FRONTEND_URL")
	}
	if origin == "" {
		origin = "http://localhost:3000" // 默认值
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	initRoute(r)

	return r
}

func initRoute(r *gin.Engine) {
	db := database.GetDB()

	// 内容变更通知：有 Redis 用缓存失效器，否则记日志
	var notifier notify.Notifier
	if database.RedisDB != nil {
		notifier = notify.NewCacheInvalidator(database.RedisDB)
	} else {
		notifier = notify.Logger{}
	}

	// 对象存储，未配置时跳过上传接口
	var storage *s3.Storage
	storageConf := config.Conf.Storage
	if storageConf.Endpoint != "" {
		var err error
		storage, err = s3.New(s3.Config{
			Endpoint:  storageConf.Endpoint,
			AccessKey: storageConf.AccessKey,
			SecretKey: storageConf.SecretKey,
			Bucket:    storageConf.Bucket,
			UseSSL:    storageConf.UseSSL,
			PublicURL: storageConf.PublicURL,
		})
		if err != nil {
			log.Printf("[biomachinis] 对象存储初始化失败，上传接口不可用: %v", err)
			storage = nil
		}
	}

	api := r.Group("/api")

	// 登录/登出/当前用户
	authHandler := auth.NewAuthHandler(db)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", middleware.JWTAuth(), authHandler.Me)
	}

	post.SetupPostRoutes(api, db, notifier, storage)
	tag.RegisterRoutes(api, db, notifier)
	user.RegisterRoutes(api, db, notifier)
	module.RegisterRoutes(api, db)
	upload.RegisterRoutes(api, storage)
}
