package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/model"
	"github.com/fcbarera0210/biomachinis/internal/module"
	"github.com/fcbarera0210/biomachinis/pkg/database"
)

var (
	PostgresDB *gorm.DB
	RedisDB    *database.RedisClient
)

func InitDatabase() {
	initPostgres()
	initRedis()
}

func initPostgres() {
	databaseConf := config.Conf.Database

	// 设置默认日志级别
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     "biomachinis",
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)

	if err != nil {
		panic(err)
	}

	// 初始化数据库表
	if err = model.InitTable(PostgresDB); err != nil {
		panic(err)
	}

	// 补种固定的模块集合
	if err = module.EnsureDefaults(PostgresDB); err != nil {
		panic(err)
	}
}

func initRedis() {
	redisConf := config.Conf.Redis

	var err error
	RedisDB, err = database.InitRedis(&database.RedisConfig{
		ServiceName: "biomachinis",
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
	})

	// Redis 只服务页面缓存失效，不可用时降级为日志通知
	if err != nil {
		log.Printf("[biomachinis] Redis 不可用，缓存失效降级为日志: %v", err)
		RedisDB = nil
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}
