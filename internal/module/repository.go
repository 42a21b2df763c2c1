package module

import (
	"gorm.io/gorm"

	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
)

// ModuleRepository 模块仓储层
// 模块集合是固定的权限范围，只读列表 + 启动时补种默认值
type ModuleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

func (r *ModuleRepository) List() ([]moduleModel.Module, error) {
	var modules []moduleModel.Module
	err := r.db.Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) GetByCode(code string) (*moduleModel.Module, error) {
	var m moduleModel.Module
	err := r.db.Where("code = ?", code).First(&m).Error
	return &m, err
}

// EnsureDefaults 补种固定的模块集合，已存在的不动
func EnsureDefaults(db *gorm.DB) error {
	defaults := []moduleModel.Module{
		{Code: moduleModel.CodeNewsManage, Name: "Gestión de Noticias"},
		{Code: moduleModel.CodeUserManage, Name: "Gestión de Usuarios"},
		{Code: moduleModel.CodeTagManage, Name: "Gestión de Etiquetas"},
	}

	for _, m := range defaults {
		if err := db.Where("code = ?", m.Code).FirstOrCreate(&m).Error; err != nil {
			return err
		}
	}
	return nil
}
