package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type ExamTypeRepository struct {
	DB *gorm.DB
}

func NewExamTypeRepository(db *gorm.DB) *ExamTypeRepository {
	return &ExamTypeRepository{DB: db}
}

func (r *ExamTypeRepository) Create(examType *model.ExamType) error {
	return r.DB.Create(examType).Error
}

func (r *ExamTypeRepository) FindByID(id uint) (*model.ExamType, error) {
	var examType model.ExamType
	err := r.DB.First(&examType, id).Error
	if err != nil {
		return nil, err
	}
	return &examType, nil
}

func (r *ExamTypeRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamType{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *ExamTypeRepository) List(skip, limit int) ([]model.ExamType, error) {
	var examTypes []model.ExamType
	err := r.DB.Offset(skip).Limit(limit).Order("id").Find(&examTypes).Error
	return examTypes, err
}

func (r *ExamTypeRepository) Update(examType *model.ExamType) error {
	return r.DB.Save(examType).Error
}

func (r *ExamTypeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.ExamType{}, id).Error
}
