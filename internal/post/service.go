package post

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	postModel "github.com/fcbarera0210/biomachinis/internal/model/post"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/slug"
	"github.com/fcbarera0210/biomachinis/internal/storage/s3"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type PostService struct {
	db       *gorm.DB
	postRepo *PostRepository
	notifier notify.Notifier
	// 对象存储，未配置时为 nil，封面清理随之跳过
	storage *s3.Storage
}

func NewPostService(db *gorm.DB, notifier notify.Notifier, storage *s3.Storage) *PostService {
	return &PostService{
		db:       db,
		postRepo: NewPostRepository(db),
		notifier: notifier,
		storage:  storage,
	}
}

// Create 创建文章
// slug 在事务内基于快照解析唯一值；并发撞车由唯一索引兜底，
// 触发后刷新快照重试一次
func (s *PostService) Create(req PostRequest, identity *auth.Identity) (*postModel.Post, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}
	if bizErr := validateRequest(req); bizErr != nil {
		return nil, bizErr
	}

	baseSlug := slug.Slugify(req.Title)
	var created *postModel.Post

	for attempt := 0; attempt < 2; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			repo := s.postRepo.WithTx(tx)

			// 1. 取快照并解析唯一 slug
			slugs, err := repo.ListSlugs("")
			if err != nil {
				return err
			}

			// 2. 插入文章
			newPost := &postModel.Post{
				Title:         req.Title,
				Slug:          slug.ResolveUnique(baseSlug, slugs),
				Excerpt:       req.Excerpt,
				Content:       req.Content,
				CoverImageURL: req.CoverImageURL,
				Published:     req.Published,
				AuthorID:      identity.ID,
			}
			if err := repo.Create(newPost); err != nil {
				return err
			}

			// 3. 写入标签关联，空集合跳过
			if len(req.TagIDs) > 0 {
				if err := repo.ReplaceTags(newPost.ID, req.TagIDs); err != nil {
					return err
				}
			}

			created = newPost
			return nil
		})

		if err == nil {
			s.notifier.ContentChanged("/", "/admin/noticias")
			return created, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 {
			// 两个并发创建解析到了同一个 slug，换快照再试一次
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("slug 冲突，请重试"),
			)
		}
		return nil, storageError("创建文章失败", err)
	}

	// 不可达，重试循环内部已返回
	return nil, storageError("创建文章失败", nil)
}

// Update 更新文章
// 标题没变时 slug 保持原样；变了才在排除自身后重新解析
func (s *PostService) Update(id string, req PostRequest, identity *auth.Identity) (*postModel.Post, *response.BusinessError) {
	if identity == nil {
		return nil, unauthorizedError()
	}
	if bizErr := validateRequest(req); bizErr != nil {
		return nil, bizErr
	}

	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			)
		}
		return nil, storageError("获取文章失败", err)
	}

	titleChanged := req.Title != existing.Title
	var updated *postModel.Post

	for attempt := 0; attempt < 2; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			repo := s.postRepo.WithTx(tx)

			newSlug := existing.Slug
			if titleChanged {
				slugs, err := repo.ListSlugs(id)
				if err != nil {
					return err
				}
				newSlug = slug.ResolveUnique(slug.Slugify(req.Title), slugs)
			}

			p := *existing
			p.Title = req.Title
			p.Slug = newSlug
			p.Excerpt = req.Excerpt
			p.Content = req.Content
			p.CoverImageURL = req.CoverImageURL
			p.Published = req.Published
			if err := repo.Update(&p); err != nil {
				return err
			}

			// 全量替换标签关联
			if err := repo.ReplaceTags(id, req.TagIDs); err != nil {
				return err
			}

			updated = &p
			return nil
		})

		if err == nil {
			if existing.CoverImageURL != updated.CoverImageURL {
				if existing.CoverImageURL != nil {
					s.removeCover(*existing.CoverImageURL)
				}
			}
			s.notifier.ContentChanged("/", "/noticias/"+updated.Slug, "/admin/noticias")
			return updated, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt == 0 && titleChanged {
			continue
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("slug 冲突，请重试"),
			)
		}
		return nil, storageError("更新文章失败", err)
	}

	return nil, storageError("更新文章失败", nil)
}

// Delete 删除文章及其标签关联
// 删除不存在的 id 视为成功
func (s *PostService) Delete(id string, identity *auth.Identity) *response.BusinessError {
	if identity == nil {
		return unauthorizedError()
	}

	// 先取封面地址，文章删掉后还要清理对象存储
	var cover string
	if existing, err := s.postRepo.GetByID(id); err == nil && existing.CoverImageURL != nil {
		cover = *existing.CoverImageURL
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.postRepo.WithTx(tx)
		if err := repo.DeleteTags(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
	if err != nil {
		return storageError("删除文章失败", err)
	}

	s.removeCover(cover)
	s.notifier.ContentChanged("/", "/admin/noticias")
	return nil
}

// removeCover 尽力删除封面对象，失败只记日志
// 外部地址或未配置存储时直接跳过
func (s *PostService) removeCover(url string) {
	if s.storage == nil || url == "" {
		return
	}
	key, ok := s.storage.KeyForURL(url)
	if !ok {
		return
	}
	if err := s.storage.Remove(context.Background(), key); err != nil {
		log.Printf("[biomachinis] 删除封面对象失败 key=%s: %v", key, err)
	}
}

// IncrementViews 阅读量 +1
// 只记日志不返回错误，计数失败不能影响文章展示
func (s *PostService) IncrementViews(id string) {
	if err := s.postRepo.IncrementViews(id); err != nil {
		log.Printf("[biomachinis] 更新阅读量失败 post=%s: %v", id, err)
	}
}

// Get 后台获取文章详情（含标签）
func (s *PostService) Get(id string) (*PostDetail, *response.BusinessError) {
	p, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			)
		}
		return nil, storageError("获取文章失败", err)
	}
	return s.withTags(p)
}

// GetPublishedBySlug 前台按 slug 获取已发布文章
func (s *PostService) GetPublishedBySlug(postSlug string) (*PostDetail, *response.BusinessError) {
	p, err := s.postRepo.GetPublishedBySlug(postSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("文章不存在"),
			)
		}
		return nil, storageError("获取文章失败", err)
	}
	return s.withTags(p)
}

// List 后台文章列表
func (s *PostService) List(page, pageSize int) (*PostListResponse, *response.BusinessError) {
	posts, total, err := s.postRepo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storageError("获取文章列表失败", err)
	}
	return &PostListResponse{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListPublished 前台文章列表
func (s *PostService) ListPublished(page, pageSize int) (*PostListResponse, *response.BusinessError) {
	posts, total, err := s.postRepo.ListPublished((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storageError("获取文章列表失败", err)
	}
	return &PostListResponse{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListPublishedByTag 前台按标签筛选文章
func (s *PostService) ListPublishedByTag(tagSlug string, page, pageSize int) (*PostListResponse, *response.BusinessError) {
	posts, total, err := s.postRepo.ListPublishedByTagSlug(tagSlug, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, storageError("获取文章列表失败", err)
	}
	return &PostListResponse{Posts: posts, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *PostService) withTags(p *postModel.Post) (*PostDetail, *response.BusinessError) {
	tags, err := s.postRepo.GetTags(p.ID)
	if err != nil {
		return nil, storageError("获取文章标签失败", err)
	}
	return &PostDetail{Post: *p, Tags: tags}, nil
}

func validateRequest(req PostRequest) *response.BusinessError {
	if strings.TrimSpace(req.Title) == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("标题不能为空"),
		)
	}
	if strings.TrimSpace(req.Content) == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("内容不能为空"),
		)
	}
	return nil
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
