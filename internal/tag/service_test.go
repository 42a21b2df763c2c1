package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcbarera0210/biomachinis/internal/auth"
	"github.com/fcbarera0210/biomachinis/internal/notify"
	"github.com/fcbarera0210/biomachinis/internal/testutils"
	"github.com/fcbarera0210/biomachinis/pkg/response"
)

// recordingNotifier 记录收到的通知路径
type recordingNotifier struct {
	paths []string
}

func (n *recordingNotifier) ContentChanged(paths ...string) {
	n.paths = append(n.paths, paths...)
}

func testIdentity() *auth.Identity {
	return &auth.Identity{ID: "test-admin", Name: "Test Admin", Email: "admin@example.com"}
}

// TestTagServiceCreate 测试标签创建与唯一性检查
func TestTagServiceCreate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	notifier := &recordingNotifier{}
	service := NewTagService(db, notifier)

	created, bizErr := service.Create("CrossFit", testIdentity())
	assert.Nil(t, bizErr)
	assert.Equal(t, "CrossFit", created.Name)
	assert.Equal(t, "crossfit", created.Slug)
	assert.NotZero(t, created.ID)
	assert.Contains(t, notifier.paths, "/admin/etiquetas")

	tests := []struct {
		name         string
		tagName      string
		expectedCode response.ResponseCode
	}{
		{"duplicate name rejected", "CrossFit", response.DuplicateName},
		// 名称不同但 slug 相同，同样拒绝而不是加后缀
		{"duplicate slug rejected", "crossfit", response.DuplicateSlug},
		{"duplicate slug via accents", "CróssFit", response.DuplicateSlug},
		{"empty name rejected", "", response.InvalidParameter},
		{"whitespace only rejected", "   ", response.InvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, bizErr := service.Create(tt.tagName, testIdentity())
			assert.Nil(t, result)
			if assert.NotNil(t, bizErr) {
				assert.Equal(t, tt.expectedCode, bizErr.Code)
			}
		})
	}
}

// TestTagServiceCreateTrimsName 名称首尾空白去除后再入库
func TestTagServiceCreateTrimsName(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(db, notify.Nop{})

	created, bizErr := service.Create("  Powerlifting  ", testIdentity())
	assert.Nil(t, bizErr)
	assert.Equal(t, "Powerlifting", created.Name)
	assert.Equal(t, "powerlifting", created.Slug)

	// 去空白后与已有名称相同，拒绝
	_, bizErr = service.Create(" Powerlifting ", testIdentity())
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.DuplicateName, bizErr.Code)
	}
}

// TestTagServiceCreateUnauthorized 未登录不能创建
func TestTagServiceCreateUnauthorized(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(db, notify.Nop{})

	result, bizErr := service.Create("Calistenia", nil)
	assert.Nil(t, result)
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.Unauthorized, bizErr.Code)
	}
}

// TestTagServiceUpdate 测试标签更新
func TestTagServiceUpdate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(db, notify.Nop{})

	created, bizErr := service.Create("Halterofilia", testIdentity())
	assert.Nil(t, bizErr)
	other, bizErr := service.Create("Running", testIdentity())
	assert.Nil(t, bizErr)

	// 正常改名，slug 跟着重新生成
	updated, bizErr := service.Update(created.ID, "Halterofilia Olímpica", testIdentity())
	assert.Nil(t, bizErr)
	assert.Equal(t, "Halterofilia Olímpica", updated.Name)
	assert.Equal(t, "halterofilia-olimpica", updated.Slug)

	// 改回原名不算冲突（唯一性检查排除自身）
	updated, bizErr = service.Update(created.ID, "Halterofilia Olímpica", testIdentity())
	assert.Nil(t, bizErr)
	assert.Equal(t, "halterofilia-olimpica", updated.Slug)

	// 撞上其他标签的名称
	_, bizErr = service.Update(created.ID, "Running", testIdentity())
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.DuplicateName, bizErr.Code)
	}

	// 撞上其他标签的 slug
	_, bizErr = service.Update(created.ID, "RUNNING", testIdentity())
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.DuplicateSlug, bizErr.Code)
	}

	// 不存在的 id
	_, bizErr = service.Update(other.ID+1000, "Nuevo Nombre", testIdentity())
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.NotFound, bizErr.Code)
	}
}

// TestTagServiceDelete 删除幂等，且清理文章关联
func TestTagServiceDelete(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(db, notify.Nop{})

	author := testutils.CreateTestUser(db)
	testTag := testutils.CreateTestTag(db)
	testPost := testutils.CreateTestPost(db, author.ID)
	testutils.AttachTag(db, testPost.ID, testTag.ID)

	bizErr := service.Delete(testTag.ID, testIdentity())
	assert.Nil(t, bizErr)

	_, bizErr = service.Get(testTag.ID)
	if assert.NotNil(t, bizErr) {
		assert.Equal(t, response.NotFound, bizErr.Code)
	}

	// 关联行一并删除
	var count int64
	err := db.Table("post_tags").Where("tag_id = ?", testTag.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.Zero(t, count)

	// 重复删除视为成功
	bizErr = service.Delete(testTag.ID, testIdentity())
	assert.Nil(t, bizErr)
}

// TestTagServiceList 列表返回全部标签
func TestTagServiceList(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewTagService(db, notify.Nop{})

	testutils.CreateTestTag(db)
	testutils.CreateTestTag(db)

	tags, bizErr := service.List()
	assert.Nil(t, bizErr)
	assert.GreaterOrEqual(t, len(tags), 2)
}
