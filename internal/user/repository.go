package user

import (
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/model/user"
)

// UserRepository 用户仓储层
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	return &u, err
}

// FindByEmail 按邮箱查找，excludeID 不为空时排除该用户自身
func (r *UserRepository) FindByEmail(email string, excludeID string) (*user.User, error) {
	var u user.User
	query := r.db.Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *user.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&user.User{}).Error
}

func (r *UserRepository) List() ([]user.User, error) {
	var users []user.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// ReplaceModules 整体替换用户的模块关联
// 先删后插的全量替换，传空集合等于清空权限
func (r *UserRepository) ReplaceModules(userID string, moduleIDs []uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&module.UserModule{}).Error; err != nil {
		return err
	}
	if len(moduleIDs) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(moduleIDs))
	rows := make([]module.UserModule, 0, len(moduleIDs))
	for _, moduleID := range moduleIDs {
		if _, ok := seen[moduleID]; ok {
			continue
		}
		seen[moduleID] = struct{}{}
		rows = append(rows, module.UserModule{UserID: userID, ModuleID: moduleID})
	}
	return r.db.Create(&rows).Error
}

// DeleteModules 清理用户的全部模块关联
func (r *UserRepository) DeleteModules(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&module.UserModule{}).Error
}

// GetModuleIDs 获取用户关联的模块ID
func (r *UserRepository) GetModuleIDs(userID string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&module.UserModule{}).Where("user_id = ?", userID).Pluck("module_id", &ids).Error
	return ids, err
}
