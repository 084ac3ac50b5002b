package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

// CreateBatch inserts all questions in one transaction; any failure rolls
// the whole batch back.
func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&questions).Error
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDs returns the questions keyed by id; deleted ids are absent.
func (r *QuestionRepository) FindByIDs(ids []uint) (map[uint]model.Question, error) {
	result := make(map[uint]model.Question, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var questions []model.Question
	if err := r.DB.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		result[q.ID] = q
	}
	return result, nil
}

// List applies the optional exam type and subject filters.
func (r *QuestionRepository) List(examTypeID, subjectID uint, skip, limit int) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Offset(skip).Limit(limit).Order("id")
	if examTypeID != 0 {
		query = query.Where("exam_type_id = ?", examTypeID)
	}
	if subjectID != 0 {
		query = query.Where("subject_id = ?", subjectID)
	}
	err := query.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindByExamType(examTypeID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("exam_type_id = ?", examTypeID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindBySubject(subjectID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("subject_id = ?", subjectID).Find(&questions).Error
	return questions, err
}

// FindByExamTypeAndSubject is the pool a test samples from.
func (r *QuestionRepository) FindByExamTypeAndSubject(examTypeID, subjectID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("exam_type_id = ? AND subject_id = ?", examTypeID, subjectID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
