package model

import (
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/model/post"
	"github.com/fcbarera0210/biomachinis/internal/model/tag"
	"github.com/fcbarera0210/biomachinis/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	err := db.AutoMigrate(
		// 用户与权限模型
		&user.User{},
		&module.Module{},
		&module.UserModule{},
		// 内容模型
		&tag.Tag{},
		&post.Post{},
		&post.PostTag{},
	)
	if err != nil {
		return err
	}
	return nil
}
