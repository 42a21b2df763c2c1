package post

import (
	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/model/post"
	"github.com/fcbarera0210/biomachinis/internal/model/tag"
)

// PostRepository 文章仓储层
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

func (r *PostRepository) GetByID(id string) (*post.Post, error) {
	var p post.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	return &p, err
}

// GetPublishedBySlug 按 slug 获取已发布文章（前台详情页）
func (r *PostRepository) GetPublishedBySlug(slug string) (*post.Post, error) {
	var p post.Post
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&p).Error
	return &p, err
}

// ListSlugs 获取全部文章 slug 快照
// excludeID 不为空时排除该文章自身，更新场景下使用
// 必须和后续的写入在同一事务内调用
func (r *PostRepository) ListSlugs(excludeID string) ([]string, error) {
	var slugs []string
	query := r.db.Model(&post.Post{})
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Pluck("slug", &slugs).Error
	return slugs, err
}

func (r *PostRepository) Create(p *post.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) Update(p *post.Post) error {
	return r.db.Save(p).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&post.Post{}).Error
}

// ReplaceTags 整体替换文章的标签关联
// 先删后插的全量替换而非差量更新，传空集合等于清空关联
func (r *PostRepository) ReplaceTags(postID string, tagIDs []uint) error {
	if err := r.db.Where("post_id = ?", postID).Delete(&post.PostTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	// 集合语义，重复提交的 tag_id 只写一行
	seen := make(map[uint]struct{}, len(tagIDs))
	rows := make([]post.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		rows = append(rows, post.PostTag{PostID: postID, TagID: tagID})
	}
	return r.db.Create(&rows).Error
}

// DeleteTags 清理文章的全部标签关联
func (r *PostRepository) DeleteTags(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&post.PostTag{}).Error
}

// GetTagIDs 获取文章关联的标签ID
func (r *PostRepository) GetTagIDs(postID string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&post.PostTag{}).Where("post_id = ?", postID).Pluck("tag_id", &ids).Error
	return ids, err
}

// GetTags 获取文章关联的标签
func (r *PostRepository) GetTags(postID string) ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.Table("tags").
		Joins("INNER JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

// IncrementViews 阅读量 +1
// 单条原子更新，避免并发读者之间互相覆盖
func (r *PostRepository) IncrementViews(id string) error {
	return r.db.Model(&post.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// List 后台文章列表（全部状态）
func (r *PostRepository) List(offset, limit int) ([]post.Post, int64, error) {
	var posts []post.Post
	var total int64

	query := r.db.Model(&post.Post{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&posts).Error
	return posts, total, err
}

// ListPublished 前台文章列表（仅已发布）
func (r *PostRepository) ListPublished(offset, limit int) ([]post.Post, int64, error) {
	var posts []post.Post
	var total int64

	query := r.db.Model(&post.Post{}).Where("published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&posts).Error
	return posts, total, err
}

// ListPublishedByTagSlug 按标签 slug 获取已发布文章
func (r *PostRepository) ListPublishedByTagSlug(tagSlug string, offset, limit int) ([]post.Post, int64, error) {
	var posts []post.Post
	var total int64

	query := r.db.Model(&post.Post{}).
		Joins("INNER JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("INNER JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.slug = ? AND posts.published = ?", tagSlug, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(limit).Order("posts.created_at DESC").Find(&posts).Error
	return posts, total, err
}
