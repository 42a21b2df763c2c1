package main

import (
	"fmt"

	"github.com/fcbarera0210/biomachinis/config"
	"github.com/fcbarera0210/biomachinis/internal/database"
	"github.com/fcbarera0210/biomachinis/internal/route"
)

func main() {
	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化数据库
	database.InitDatabase()

	// 3. 设置路由
	r := route.SetupRouter()

	// 4. 启动服务
	addr := fmt.Sprintf(":%d", config.Conf.Server.Port)
	if err := r.Run(addr); err != nil {
		panic(err)
	}
}
