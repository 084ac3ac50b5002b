package service

import (
	"testing"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestExamTypeService(db *gorm.DB) *ExamTypeService {
	return NewExamTypeService(repository.NewExamTypeRepository(db))
}

func TestCreateExamTypeRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExamTypeService(db)

	created, err := svc.Create("WAEC", "West African exams")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "WAEC", created.Name)

	_, err = svc.Create("WAEC", "second registration")
	assert.ErrorIs(t, err, util.ErrExamTypeExists)
}

func TestExamTypePatchLeavesUntouchedFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExamTypeService(db)

	created, err := svc.Create("NECO", "National exams council")
	require.NoError(t, err)

	updated, err := svc.Update(created.ID, model.ExamTypePatch{Name: strPtr("NECO SSCE")})
	require.NoError(t, err)
	assert.Equal(t, "NECO SSCE", updated.Name)
	assert.Equal(t, "National exams council", updated.Description)

	stored, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "NECO SSCE", stored.Name)

	_, err = svc.Update(9999, model.ExamTypePatch{Name: strPtr("nope")})
	assert.ErrorIs(t, err, util.ErrExamTypeNotFound)
}

func TestListExamTypesPages(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExamTypeService(db)

	for _, name := range []string{"JAMB", "WAEC", "NECO"} {
		_, err := svc.Create(name, "")
		require.NoError(t, err)
	}

	page, err := svc.List(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "WAEC", page[0].Name)
	assert.Equal(t, "NECO", page[1].Name)
}

func TestDeleteExamType(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestExamTypeService(db)

	created, err := svc.Create("GCE", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, util.ErrExamTypeNotFound)

	assert.ErrorIs(t, svc.Delete(9999), util.ErrExamTypeNotFound)
}
