package tag

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	tagModel "github.com/fcbarera0210/biomachinis/internal/model/tag"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/slug"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type TagService struct {
	tagRepo  *TagRepository
	notifier notify.Notifier
}

func NewTagService(db *gorm.DB, notifier notify.Notifier) *TagService {
	return &TagService{
		tagRepo:  NewTagRepository(db),
		notifier: notifier,
	}
}

// List 获取全部标签
func (s *TagService) List() ([]tagModel.Tag, *response.BusinessError) {
	tags, err := s.tagRepo.List()
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取标签列表失败"),
			response.WithError(err),
		)
	}
	return tags, nil
}

// Get 获取单个标签
func (s *TagService) Get(id uint) (*tagModel.Tag, *response.BusinessError) {
	t, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("标签不存在"),
			)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取标签失败"),
			response.WithError(err),
		)
	}
	return t, nil
}

// Create 创建标签
// 名称和 slug 分别检查唯一性：名称不同但 slug 撞车时同样拒绝，
// 标签 slug 冲突不加序号
func (s *TagService) Create(name string, identity *auth.Identity) (*tagModel.Tag, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("标签名称不能为空"),
		)
	}

	if bizErr := s.checkUnique(name, 0); bizErr != nil {
		return nil, bizErr
	}

	newTag := &tagModel.Tag{
		Name: name,
		Slug: slug.Slugify(name),
	}
	if err := s.tagRepo.Create(newTag); err != nil {
		// 唯一索引兜底：并发创建时预检查可能漏掉冲突
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(name)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建标签失败"),
			response.WithError(err),
		)
	}

	s.notifier.ContentChanged("/admin/etiquetas")
	return newTag, nil
}

// Update 更新标签
func (s *TagService) Update(id uint, name string, identity *auth.Identity) (*tagModel.Tag, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("标签名称不能为空"),
		)
	}

	existing, err := s.tagRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("标签不存在"),
			)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取标签失败"),
			response.WithError(err),
		)
	}

	if bizErr := s.checkUnique(name, id); bizErr != nil {
		return nil, bizErr
	}

	existing.Name = name
	existing.Slug = slug.Slugify(name)
	if err := s.tagRepo.Update(existing); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(name)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新标签失败"),
			response.WithError(err),
		)
	}

	s.notifier.ContentChanged("/admin/etiquetas")
	return existing, nil
}

// Delete 删除标签，关联的文章标签行一并清理
// 删除不存在的 id 视为成功
func (s *TagService) Delete(id uint, identity *auth.Identity) *response.BusinessError {
	if identity == nil {
		return unauthorizedError()
	}

	if err := s.tagRepo.Delete(id); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除标签失败"),
			response.WithError(err),
		)
	}

	s.notifier.ContentChanged("/admin/etiquetas")
	return nil
}

// checkUnique 名称和 slug 两个独立的唯一性预检查
func (s *TagService) checkUnique(name string, excludeID uint) *response.BusinessError {
	if _, err := s.tagRepo.FindByName(name, excludeID); err == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.DuplicateName),
			response.WithErrorMessage("已存在同名标签"),
		)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("检查标签名称失败"),
			response.WithError(err),
		)
	}

	if _, err := s.tagRepo.FindBySlug(slug.Slugify(name), excludeID); err == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.DuplicateSlug),
			response.WithErrorMessage("生成的 slug 已被占用"),
		)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("检查标签 slug 失败"),
			response.WithError(err),
		)
	}

	return nil
}

// duplicateError 唯一索引兜底触发后，复查是名称冲突还是 slug 冲突
func (s *TagService) duplicateError(name string) *response.BusinessError {
	if _, err := s.tagRepo.FindByName(name, 0); err == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.DuplicateName),
			response.WithErrorMessage("已存在同名标签"),
		)
	}
	return response.NewBusinessError(
		response.WithErrorCode(response.DuplicateSlug),
		response.WithErrorMessage("生成的 slug 已被占用"),
	)
}

func unauthorizedError() *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("未登录"),
	)
}
