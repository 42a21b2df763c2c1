package post

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/testutils"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

type recordingNotifier struct {
	paths []string
}

func (n *recordingNotifier) ContentChanged(paths ...string) {
	n.paths = append(n.paths, paths...)
}

func strPtr(s string) *string {
	return &s
}

func identityFor(userID string) *auth.Identity {
	return &auth.Identity{ID: userID, Name: "Test Author", Email: "author@example.com"}
}

// TestPostServiceCreate 测试文章创建与 slug 生成
func TestPostServiceCreate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	notifier := &recordingNotifier{}
	service := NewPostService(db, notifier, nil)

	author := testutils.CreateTestUser(db)
	tag1 := testutils.CreateTestTag(db)
	tag2 := testutils.CreateTestTag(db)

	req := PostRequest{
		Title:     "Guía de Nutrición Deportiva",
		Excerpt:   strPtr("Resumen corto"),
		Content:   `{"type":"doc","content":[]}`,
		Published: true,
		TagIDs:    []uint{tag1.ID, tag2.ID},
	}

	created, bizErr := service.Create(req, identityFor(author.ID))
	assert.Nil(t, bizErr)
	assert.Equal(t, "guia-de-nutricion-deportiva", created.Slug)
	assert.Equal(t, author.ID, created.AuthorID)
	assert.True(t, created.Published)
	assert.Contains(t, notifier.paths, "/")

	tagIDs, err := NewPostRepository(db).GetTagIDs(created.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{tag1.ID, tag2.ID}, tagIDs)
}

// TestPostServiceCreateSlugSuffix 同标题文章 slug 依次加序号
func TestPostServiceCreateSlugSuffix(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)
	req := PostRequest{Title: "Noticia Repetida", Content: `{"type":"doc"}`}

	first, bizErr := service.Create(req, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, "noticia-repetida", first.Slug)

	second, bizErr := service.Create(req, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, "noticia-repetida-1", second.Slug)

	third, bizErr := service.Create(req, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, "noticia-repetida-2", third.Slug)
}

// TestPostServiceCreateValidation 参数校验
func TestPostServiceCreateValidation(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)

	tests := []struct {
		name         string
		req          PostRequest
		identity     *auth.Identity
		expectedCode response.ResponseCode
	}{
		{"empty title", PostRequest{Title: "  ", Content: "x"}, identity, response.InvalidParameter},
		{"empty content", PostRequest{Title: "Título", Content: " "}, identity, response.InvalidParameter},
		{"unauthenticated", PostRequest{Title: "Título", Content: "x"}, nil, response.Unauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, bizErr := service.Create(tt.req, tt.identity)
			assert.Nil(t, result)
			if assert.NotNil(t, bizErr) {
				assert.Equal(t, tt.expectedCode, bizErr.Code)
			}
		})
	}
}

// TestPostServiceUpdateKeepsSlug 标题没变时 slug 保持不变
func TestPostServiceUpdateKeepsSlug(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)

	created, bizErr := service.Create(PostRequest{
		Title:   "Entrenamiento de Fuerza",
		Content: `{"v":1}`,
	}, identity)
	assert.Nil(t, bizErr)

	// 只改内容，slug 原样保留
	updated, bizErr := service.Update(created.ID, PostRequest{
		Title:     "Entrenamiento de Fuerza",
		Content:   `{"v":2}`,
		Published: true,
	}, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, `{"v":2}`, updated.Content)
	assert.True(t, updated.Published)
}

// TestPostServiceUpdateRecomputesSlug 标题变了才重新解析 slug，且排除自身
func TestPostServiceUpdateRecomputesSlug(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)

	created, bizErr := service.Create(PostRequest{Title: "Título Original", Content: "{}"}, identity)
	assert.Nil(t, bizErr)
	other, bizErr := service.Create(PostRequest{Title: "Otro Artículo", Content: "{}"}, identity)
	assert.Nil(t, bizErr)

	// 改成新标题
	updated, bizErr := service.Update(created.ID, PostRequest{Title: "Título Nuevo", Content: "{}"}, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, "titulo-nuevo", updated.Slug)

	// 撞上其他文章的标题，加序号
	updated, bizErr = service.Update(created.ID, PostRequest{Title: "Otro Artículo", Content: "{}"}, identity)
	assert.Nil(t, bizErr)
	assert.Equal(t, other.Slug+"-1", updated.Slug)
}

// TestPostServiceUpdateReplacesTags 更新时标签全量替换
func TestPostServiceUpdateReplacesTags(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)
	tag1 := testutils.CreateTestTag(db)
	tag2 := testutils.CreateTestTag(db)
	tag3 := testutils.CreateTestTag(db)

	created, bizErr := service.Create(PostRequest{
		Title:   "Artículo con Etiquetas",
		Content: "{}",
		TagIDs:  []uint{tag1.ID, tag2.ID},
	}, identity)
	assert.Nil(t, bizErr)

	repo := NewPostRepository(db)

	// {1,2} -> {2,3}
	_, bizErr = service.Update(created.ID, PostRequest{
		Title:   "Artículo con Etiquetas",
		Content: "{}",
		TagIDs:  []uint{tag2.ID, tag3.ID},
	}, identity)
	assert.Nil(t, bizErr)

	tagIDs, err := repo.GetTagIDs(created.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{tag2.ID, tag3.ID}, tagIDs)

	// 空集合清掉全部关联
	_, bizErr = service.Update(created.ID, PostRequest{
		Title:   "Artículo con Etiquetas",
		Content: "{}",
	}, identity)
	assert.Nil(t, bizErr)

	tagIDs, err = repo.GetTagIDs(created.ID)
	assert.NoError(t, err)
	assert.Empty(t, tagIDs)

	// 重复的 tag_id 去重后写入
	_, bizErr = service.Update(created.ID, PostRequest{
		Title:   "Artículo con Etiquetas",
		Content: "{}",
		TagIDs:  []uint{tag1.ID, tag1.ID, tag2.ID},
	}, identity)
	assert.Nil(t, bizErr)

	tagIDs, err = repo.GetTagIDs(created.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{tag1.ID, tag2.ID}, tagIDs)
}

// TestPostServiceDelete 删除文章及关联，幂等
func TestPostServiceDelete(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)
	testTag := testutils.CreateTestTag(db)

	created, bizErr := service.Create(PostRequest{
		Title:   "Artículo a Borrar",
		Content: "{}",
		TagIDs:  []uint{testTag.ID},
	}, identity)
	assert.Nil(t, bizErr)

	bizErr = service.Delete(created.ID, identity)
	assert.Nil(t, bizErr)

	_, bizErr = service.Get(created.ID)
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.NotFound, bizErr.Code)
	}

	var count int64
	err := db.Table("post_tags").Where("post_id = ?", created.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Zero(t, count)

	// 重复删除视为成功
	bizErr = service.Delete(created.ID, identity)
	assert.Nil(t, bizErr)
}

// TestPostServiceGetPublishedBySlug 前台只返回已发布文章
func TestPostServiceGetPublishedBySlug(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)
	testTag := testutils.CreateTestTag(db)

	published, bizErr := service.Create(PostRequest{
		Title:     "Artículo Publicado",
		Content:   "{}",
		Published: true,
		TagIDs:    []uint{testTag.ID},
	}, identity)
	assert.Nil(t, bizErr)

	draft, bizErr := service.Create(PostRequest{
		Title:   "Borrador",
		Content: "{}",
	}, identity)
	assert.Nil(t, bizErr)

	detail, bizErr := service.GetPublishedBySlug(published.Slug)
	assert.Nil(t, bizErr)
	assert.Equal(t, published.ID, detail.ID)
	assert.Len(t, detail.Tags, 1)

	_, bizErr = service.GetPublishedBySlug(draft.Slug)
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.NotFound, bizErr.Code)
	}
}

// TestPostServiceListPublishedByTag 按标签筛选已发布文章
func TestPostServiceListPublishedByTag(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	identity := identityFor(author.ID)
	testTag := testutils.CreateTestTag(db)

	_, bizErr := service.Create(PostRequest{
		Title:     "Con Etiqueta",
		Content:   "{}",
		Published: true,
		TagIDs:    []uint{testTag.ID},
	}, identity)
	assert.Nil(t, bizErr)

	// 草稿不出现在结果里
	_, bizErr = service.Create(PostRequest{
		Title:   "Borrador con Etiqueta",
		Content: "{}",
		TagIDs:  []uint{testTag.ID},
	}, identity)
	assert.Nil(t, bizErr)

	result, bizErr := service.ListPublishedByTag(testTag.Slug, 1, 10)
	assert.Nil(t, bizErr)
	assert.Equal(t, int64(1), result.Total)
	assert.Len(t, result.Posts, 1)
	assert.Equal(t, "Con Etiqueta", result.Posts[0].Title)
}

// TestPostServiceIncrementViewsConcurrent 并发计数不丢更新
// 需要真实连接，事务内的并发写会互相阻塞
func TestPostServiceIncrementViewsConcurrent(t *testing.T) {
	db := testutils.SetupTestRawDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	author := testutils.CreateTestUser(db)
	created := testutils.CreateTestPost(db, author.ID)
	t.Cleanup(func() {
		db.Table("posts").Where("id = ?", created.ID).Delete(nil)
		db.Table("users").Where("id = ?", author.ID).Delete(nil)
	})

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			service.IncrementViews(created.ID)
		}()
	}
	wg.Wait()

	detail, bizErr := service.Get(created.ID)
	assert.Nil(t, bizErr)
	assert.Equal(t, uint(workers), detail.Views)
}

// TestPostServiceIncrementViewsMissing 对不存在的文章计数不报错
func TestPostServiceIncrementViewsMissing(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPostService(db, notify.Nop{}, nil)

	// 不 panic、不返回错误即可
	service.IncrementViews("00000000-0000-0000-0000-000000000000")
}
