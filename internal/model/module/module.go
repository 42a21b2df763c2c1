// Package module 后台功能模块（权限范围）
package module

// 固定的模块 code 集合
const (
	CodeNewsManage = "NEWS_MANAGE"
	CodeUserManage = "USER_MANAGE"
	CodeTagManage  = "TAG_MANAGE"
)

// Module 模块表
type Module struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// UserModule 用户-模块关联表
type UserModule struct {
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	ModuleID uint   `gorm:"primaryKey" json:"module_id"`
}
