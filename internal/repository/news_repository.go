package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type NewsRepository struct {
	DB *gorm.DB
}

func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{DB: db}
}

func (r *NewsRepository) Create(news *model.News) error {
	return r.DB.Create(news).Error
}

func (r *NewsRepository) FindByID(id uint) (*model.News, error) {
	var news model.News
	err := r.DB.First(&news, id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (r *NewsRepository) List(skip, limit int) ([]model.News, error) {
	var items []model.News
	err := r.DB.Offset(skip).Limit(limit).Order("date DESC").Find(&items).Error
	return items, err
}

func (r *NewsRepository) Update(news *model.News) error {
	return r.DB.Save(news).Error
}

func (r *NewsRepository) Delete(id uint) error {
	return r.DB.Delete(&model.News{}, id).Error
}
