package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// List filters by exam type when examTypeID is non-zero.
func (r *SubjectRepository) List(examTypeID uint, skip, limit int) ([]model.Subject, error) {
	var subjects []model.Subject
	query := r.DB.Offset(skip).Limit(limit).Order("id")
	if examTypeID != 0 {
		query = query.Where("exam_type_id = ?", examTypeID)
	}
	err := query.Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByIDs(ids []uint) (map[uint]model.Subject, error) {
	subjects := make(map[uint]model.Subject, len(ids))
	if len(ids) == 0 {
		return subjects, nil
	}
	var rows []model.Subject
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		subjects[s.ID] = s
	}
	return subjects, nil
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Subject{}, id).Error
}
