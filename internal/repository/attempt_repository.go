package repository

import (
	"cbt_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.Attempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.DB.First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) FindByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ?", userID).Order("start_time DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindCompletedByUser(userID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.AttemptCompleted).
		Order("start_time DESC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) FindCompletedByTest(testID uint) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("test_id = ? AND status = ?", testID, model.AttemptCompleted).
		Find(&attempts).Error
	return attempts, err
}

// FindCompleted returns every completed attempt ordered by user then
// insertion; the leaderboard's tie order follows this ordering.
func (r *AttemptRepository) FindCompleted() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("status = ?", model.AttemptCompleted).
		Order("user_id, id").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CreateAnswers(answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *AttemptRepository) GetAnswers(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("id").Find(&answers).Error
	return answers, err
}
