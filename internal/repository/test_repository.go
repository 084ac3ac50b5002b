package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id uint) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// FindByIDs returns the tests keyed by id; deleted ids are absent.
func (r *TestRepository) FindByIDs(ids []uint) (map[uint]model.Test, error) {
	result := make(map[uint]model.Test, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var tests []model.Test
	if err := r.DB.Where("id IN ?", ids).Find(&tests).Error; err != nil {
		return nil, err
	}
	for _, t := range tests {
		result[t.ID] = t
	}
	return result, nil
}

func (r *TestRepository) List(skip, limit int) ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Offset(skip).Limit(limit).Order("id").Find(&tests).Error
	return tests, err
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Test{}, id).Error
}
