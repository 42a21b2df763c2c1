package post

import (
	postModel "github.com/fcbarera0210/biomachinis/internal/model/post"
	tagModel "github.com/fcbarera0210/biomachinis/internal/model/tag"
)

// PostRequest 创建/更新文章请求
// 字段整体提交，不做部分更新；可选字段用指针表达"缺省"
type PostRequest struct {
	Title         string  `json:"title" binding:"required,max=255"`
	Excerpt       *string `json:"excerpt"`
	Content       string  `json:"content" binding:"required"`
	CoverImageURL *string `json:"cover_image_url"`
	Published     bool    `json:"published"`
	TagIDs        []uint  `json:"tag_ids"`
}

// PostDetail 文章详情（含标签）
type PostDetail struct {
	postModel.Post
	Tags []tagModel.Tag `json:"tags"`
}

// PostListResponse 文章列表响应
type PostListResponse struct {
	Posts    []postModel.Post `json:"posts"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}
