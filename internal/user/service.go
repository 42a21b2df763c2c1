package user

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	userModel "github.com/fcbarera0210/biomachinis/internal/model/user"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type UserService struct {
	db       *gorm.DB
	userRepo *UserRepository
	notifier notify.Notifier
}

func NewUserService(db *gorm.DB, notifier notify.Notifier) *UserService {
	return &UserService{
		db:       db,
		userRepo: NewUserRepository(db),
		notifier: notifier,
	}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	IsActive  bool   `json:"is_active"`
	ModuleIDs []uint `json:"module_ids"`
}

// UpdateUserRequest 更新用户请求
// Password 为 nil 或空串表示不修改密码，保留原哈希
type UpdateUserRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Email     string  `json:"email" binding:"required,email"`
	Password  *string `json:"password"`
	IsActive  bool    `json:"is_active"`
	ModuleIDs []uint  `json:"module_ids"`
}

// UserDetail 用户详情（含模块ID，不含密码哈希）
type UserDetail struct {
	userModel.User
	ModuleIDs []uint `json:"module_ids"`
}

// Create 创建用户并分配模块
func (s *UserService) Create(req CreateUserRequest, identity *auth.Identity) (*userModel.User, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}

	// 1. 邮箱唯一性预检查
	if bizErr := s.checkEmail(req.Email, ""); bizErr != nil {
		return nil, bizErr
	}

	// 2. 密码加密，明文永不落库
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
			response.WithError(err),
		)
	}

	// 3. 用户和模块关联在同一事务内写入
	newUser := &userModel.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     req.IsActive,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if err := repo.Create(newUser); err != nil {
			return err
		}
		if len(req.ModuleIDs) > 0 {
			return repo.ReplaceModules(newUser.ID, req.ModuleIDs)
		}
		return nil
	})
	if err != nil {
		// 唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateEmailError()
		}
		return nil, storageError("创建用户失败", err)
	}

	s.notifier.ContentChanged("/admin/usuarios")
	return newUser, nil
}

// Update 更新用户并整体替换模块关联
func (s *UserService) Update(id string, req UpdateUserRequest, identity *auth.Identity) (*userModel.User, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}

	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("用户不存在"),
			)
		}
		return nil, storageError("获取用户失败", err)
	}

	if bizErr := s.checkEmail(req.Email, id); bizErr != nil {
		return nil, bizErr
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.IsActive = req.IsActive

	// 提供了新密码才重新加密，否则原哈希原样保留
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("密码加密失败"),
				response.WithError(err),
			)
		}
		existing.PasswordHash = string(hashedPassword)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if err := repo.Update(existing); err != nil {
			return err
		}
		return repo.ReplaceModules(id, req.ModuleIDs)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateEmailError()
		}
		return nil, storageError("更新用户失败", err)
	}

	s.notifier.ContentChanged("/admin/usuarios")
	return existing, nil
}

// Delete 删除用户及其模块关联
// 不允许删除当前登录用户自己；删除不存在的 id 视为成功
func (s *UserService) Delete(id string, identity *auth.Identity) *response.BusinessError {
	if identity == nil {
		return unauthorizedError()
	}

	if identity.ID == id {
		return response.NewBusinessError(
			response.WithErrorCode(response.SelfDeletion),
			response.WithErrorMessage("不能删除自己的账号"),
		)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if err := repo.DeleteModules(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
	if err != nil {
		return storageError("删除用户失败", err)
	}

	s.notifier.ContentChanged("/admin/usuarios")
	return nil
}

// List 用户列表
func (s *UserService) List() ([]userModel.User, *response.BusinessError) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, storageError("获取用户列表失败", err)
	}
	return users, nil
}

// Get 用户详情（含模块ID）
func (s *UserService) Get(id string) (*UserDetail, *response.BusinessError) {
	u, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("用户不存在"),
			)
		}
		return nil, storageError("获取用户失败", err)
	}

	moduleIDs, err := s.userRepo.GetModuleIDs(id)
	if err != nil {
		return nil, storageError("获取用户模块失败", err)
	}

	return &UserDetail{User: *u, ModuleIDs: moduleIDs}, nil
}

func (s *UserService) checkEmail(email string, excludeID string) *response.BusinessError {
	if _, err := s.userRepo.FindByEmail(email, excludeID); err == nil {
		return duplicateEmailError()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageError("检查邮箱失败", err)
	}
	return nil
}

func duplicateEmailError() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.DuplicateEmail),
		response.WithErrorMessage("该邮箱已被注册"),
	)
}

func unauthorizedError() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("未登录"),
	)
}

func storageError(msg string, err error) *response.BusinessError {
	if err != nil {
		log.Printf("[biomachinis] %s: %v", msg, err)
	}
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
