package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/testutils"
)

// TestGetUserModules 用户拥有的模块 code 列表
func TestGetUserModules(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPermissionService(db)

	editor := testutils.CreateTestUser(db)
	testutils.GrantModule(db, editor.ID, moduleModel.CodeNewsManage)
	testutils.GrantModule(db, editor.ID, moduleModel.CodeTagManage)

	nobody := testutils.CreateTestUser(db)

	codes, err := service.GetUserModules(editor.ID)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{moduleModel.CodeNewsManage, moduleModel.CodeTagManage}, codes)

	codes, err = service.GetUserModules(nobody.ID)
	assert.NoError(t, err)
	assert.Empty(t, codes)
}

// TestHasModuleAccess 单个模块的访问判断
func TestHasModuleAccess(t *testing.T) {
	db := testutils.SetupTestDB(t)
	service := NewPermissionService(db)

	editor := testutils.CreateTestUser(db)
	testutils.GrantModule(db, editor.ID, moduleModel.CodeNewsManage)

	tests := []struct {
		name       string
		userID     string
		moduleCode string
		expected   bool
	}{
		{"granted module", editor.ID, moduleModel.CodeNewsManage, true},
		{"not granted module", editor.ID, moduleModel.CodeUserManage, false},
		{"unknown module code", editor.ID, "NO_SUCH_MODULE", false},
		{"unknown user", "00000000-0000-0000-0000-000000000000", moduleModel.CodeNewsManage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := service.HasModuleAccess(tt.userID, tt.moduleCode)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}
