package service

import (
	"errors"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo  *repository.SubjectRepository
	ExamTypeRepo *repository.ExamTypeRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, examTypeRepo *repository.ExamTypeRepository) *SubjectService {
	return &SubjectService{
		SubjectRepo:  subjectRepo,
		ExamTypeRepo: examTypeRepo,
	}
}

func (s *SubjectService) Create(name, description string, examTypeID uint) (*model.Subject, error) {
	if _, err := s.ExamTypeRepo.FindByID(examTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamTypeNotFound
		}
		return nil, err
	}

	subject := &model.Subject{
		Name:        name,
		Description: description,
		ExamTypeID:  examTypeID,
	}
	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Get(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

// List returns subjects, optionally narrowed to one exam type.
func (s *SubjectService) List(examTypeID uint, skip, limit int) ([]model.Subject, error) {
	return s.SubjectRepo.List(examTypeID, skip, limit)
}

func (s *SubjectService) Update(id uint, patch model.SubjectPatch) (*model.Subject, error) {
	subject, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.ExamTypeID != nil {
		if _, err := s.ExamTypeRepo.FindByID(*patch.ExamTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrExamTypeNotFound
			}
			return nil, err
		}
	}
	patch.Apply(subject)
	if err := s.SubjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.SubjectRepo.Delete(id)
}
