package service

import (
	"errors"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type ExamTypeService struct {
	ExamTypeRepo *repository.ExamTypeRepository
}

func NewExamTypeService(examTypeRepo *repository.ExamTypeRepository) *ExamTypeService {
	return &ExamTypeService{
		ExamTypeRepo: examTypeRepo,
	}
}

func (s *ExamTypeService) Create(name, description string) (*model.ExamType, error) {
	exists, err := s.ExamTypeRepo.ExistsByName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrExamTypeExists
	}

	examType := &model.ExamType{
		Name:        name,
		Description: description,
	}
	if err := s.ExamTypeRepo.Create(examType); err != nil {
		return nil, err
	}
	return examType, nil
}

func (s *ExamTypeService) Get(id uint) (*model.ExamType, error) {
	examType, err := s.ExamTypeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamTypeNotFound
		}
		return nil, err
	}
	return examType, nil
}

func (s *ExamTypeService) List(skip, limit int) ([]model.ExamType, error) {
	return s.ExamTypeRepo.List(skip, limit)
}

func (s *ExamTypeService) Update(id uint, patch model.ExamTypePatch) (*model.ExamType, error) {
	examType, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(examType)
	if err := s.ExamTypeRepo.Update(examType); err != nil {
		return nil, err
	}
	return examType, nil
}

func (s *ExamTypeService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.ExamTypeRepo.Delete(id)
}
