package service

import (
	"testing"
	"time"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestNewsService(db *gorm.DB) *NewsService {
	return NewNewsService(repository.NewNewsRepository(db))
}

func TestCreateNewsStampsDate(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestNewsService(db)
	admin := seedUser(t, db, "admin", model.Admin)

	item, err := svc.Create("Exam dates released", "Registration closes in May.", nil, admin.ID)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, admin.ID, item.CreatedBy)
	assert.Nil(t, item.ImageURL)
	assert.WithinDuration(t, time.Now(), item.Date, 5*time.Second)
}

func TestListNewsNewestDateFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestNewsService(db)
	admin := seedUser(t, db, "admin", model.Admin)

	older, err := svc.Create("Older", "body", nil, admin.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(older).Update("date", time.Now().Add(-48*time.Hour)).Error)
	_, err = svc.Create("Newer", "body", nil, admin.ID)
	require.NoError(t, err)

	items, err := svc.List(0, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Title)
	assert.Equal(t, "Older", items[1].Title)

	paged, err := svc.List(1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Older", paged[0].Title)
}

func TestUpdateNewsPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestNewsService(db)
	admin := seedUser(t, db, "admin", model.Admin)

	item, err := svc.Create("Draft", "original", nil, admin.ID)
	require.NoError(t, err)

	updated, err := svc.Update(item.ID, model.NewsPatch{
		Content:  strPtr("corrected"),
		ImageURL: strPtr("uploads/news/banner.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "corrected", updated.Content)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "uploads/news/banner.png", *updated.ImageURL)

	_, err = svc.Update(9999, model.NewsPatch{Title: strPtr("ghost")})
	assert.ErrorIs(t, err, util.ErrNewsNotFound)
}

func TestDeleteNews(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestNewsService(db)
	admin := seedUser(t, db, "admin", model.Admin)

	item, err := svc.Create("Ephemeral", "body", nil, admin.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(item.ID))
	_, err = svc.Get(item.ID)
	assert.ErrorIs(t, err, util.ErrNewsNotFound)

	assert.ErrorIs(t, svc.Delete(9999), util.ErrNewsNotFound)
}
