// Package post 文章（noticia）相关模型
package post

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post 文章表
type Post struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"id"`
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	// URL 标识，全站唯一；数据库唯一索引是并发创建时的兜底
	Slug    string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Excerpt *string `gorm:"type:text" json:"excerpt,omitempty"`
	// 富文本编辑器序列化后的 JSON 字符串，服务端不解析
	Content       string  `gorm:"type:text;not null" json:"content"`
	CoverImageURL *string `gorm:"type:varchar(500)" json:"cover_image_url,omitempty"`
	Published     bool    `gorm:"default:false;not null" json:"published"`
	// 阅读量统计
	Views     uint      `gorm:"default:0;not null" json:"views"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate 生成主键
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PostTag 文章-标签关联表
// 复合主键保证 (post_id, tag_id) 唯一，删除任意一侧时级联清理
type PostTag struct {
	PostID string `gorm:"type:uuid;primaryKey" json:"post_id"`
	TagID  uint   `gorm:"primaryKey" json:"tag_id"`
}
