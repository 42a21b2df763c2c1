package module

import (
	"testing"

	"github.com/stretchr/testify/assert"

	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	"github.com/fcbarera0210/biomachinis/internal/testutils"
)

// TestEnsureDefaults 补种幂等，重复执行不产生重复行
func TestEnsureDefaults(t *testing.T) {
	db := testutils.SetupTestDB(t)

	assert.NoError(t, EnsureDefaults(db))
	assert.NoError(t, EnsureDefaults(db))

	var count int64
	assert.NoError(t, db.Model(&moduleModel.Module{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

// TestModuleRepository 模块列表与按 code 查询
func TestModuleRepository(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewModuleRepository(db)

	modules, err := repo.List()
	assert.NoError(t, err)
	assert.Len(t, modules, 3)

	codes := make([]string, 0, len(modules))
	for _, m := range modules {
		codes = append(codes, m.Code)
	}
	assert.ElementsMatch(t, []string{
		moduleModel.CodeNewsManage,
		moduleModel.CodeUserManage,
		moduleModel.CodeTagManage,
	}, codes)

	m, err := repo.GetByCode(moduleModel.CodeNewsManage)
	assert.NoError(t, err)
	assert.Equal(t, "Gestión de Noticias", m.Name)

	_, err = repo.GetByCode("NO_SUCH_MODULE")
	assert.Error(t, err)
}
