// Package permission 模块权限检查
// 后台每个功能区对应一个模块 code，用户通过 user_modules 关联获得访问权
package permission

import (
	"gorm.io/gorm"
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// GetUserModules 获取用户拥有的模块 code 列表
func (s *PermissionService) GetUserModules(userID string) ([]string, error) {
	var codes []string
	err := s.db.Table("user_modules").
		Select("modules.code").
		Joins("INNER JOIN modules ON modules.id = user_modules.module_id").
		Where("user_modules.user_id = ?", userID).
		Scan(&codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// HasModuleAccess 判断用户是否拥有指定模块
func (s *PermissionService) HasModuleAccess(userID string, moduleCode string) (bool, error) {
	var count int64
	err := s.db.Table("user_modules").
		Joins("INNER JOIN modules ON modules.id = user_modules.module_id").
		Where("user_modules.user_id = ? AND modules.code = ?", userID, moduleCode).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
