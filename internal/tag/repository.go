package tag

import (
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/model/post"
	"github.com/fcbarera0210/biomachinis/internal/model/tag"
)

// TagRepository 标签仓储层
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

func (r *TagRepository) GetByID(id uint) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.First(&t, id).Error
	return &t, err
}

func (r *TagRepository) List() ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByName 按名称查找，excludeID 不为 0 时排除该记录
func (r *TagRepository) FindByName(name string, excludeID uint) (*tag.Tag, error) {
	var t tag.Tag
	query := r.db.Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindBySlug 按 slug 查找，excludeID 不为 0 时排除该记录
func (r *TagRepository) FindBySlug(slug string, excludeID uint) (*tag.Tag, error) {
	var t tag.Tag
	query := r.db.Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) Create(t *tag.Tag) error {
	return r.db.Create(t).Error
}

func (r *TagRepository) Update(t *tag.Tag) error {
	return r.db.Save(t).Error
}

// Delete 删除标签并清理其关联行，同一事务内执行
func (r *TagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&post.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tag.Tag{}, id).Error
	})
}
