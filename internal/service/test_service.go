package service

import (
	"errors"
	"fmt"
	"math/rand"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type TestService struct {
	TestRepo     *repository.TestRepository
	QuestionRepo *repository.QuestionRepository
	ExamTypeRepo *repository.ExamTypeRepository
	SubjectRepo  *repository.SubjectRepository
}

func NewTestService(
	testRepo *repository.TestRepository,
	questionRepo *repository.QuestionRepository,
	examTypeRepo *repository.ExamTypeRepository,
	subjectRepo *repository.SubjectRepository,
) *TestService {
	return &TestService{
		TestRepo:     testRepo,
		QuestionRepo: questionRepo,
		ExamTypeRepo: examTypeRepo,
		SubjectRepo:  subjectRepo,
	}
}

// TestInput describes a test to assemble. Title, total and passing marks
// are derived, not supplied.
type TestInput struct {
	ExamTypeID      uint `json:"exam_type_id" binding:"required"`
	SubjectID       uint `json:"subject_id" binding:"required"`
	DurationMinutes int  `json:"duration_minutes" binding:"required,gt=0"`
	QuestionCount   int  `json:"question_count" binding:"required,gt=0"`
}

// Create assembles a test from its exam type and subject. The title is
// "<ExamType> <Subject> Test", each question is worth one mark, and the
// passing bar is half the total, rounded down.
func (s *TestService) Create(in TestInput, createdBy uint) (*model.Test, error) {
	examType, err := s.ExamTypeRepo.FindByID(in.ExamTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamTypeNotFound
		}
		return nil, err
	}
	subject, err := s.SubjectRepo.FindByID(in.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	test := &model.Test{
		Title:           fmt.Sprintf("%s %s Test", examType.Name, subject.Name),
		ExamTypeID:      in.ExamTypeID,
		SubjectID:       in.SubjectID,
		DurationMinutes: in.DurationMinutes,
		QuestionCount:   in.QuestionCount,
		TotalMarks:      in.QuestionCount,
		PassingMarks:    in.QuestionCount / 2,
		IsActive:        true,
		CreatedBy:       createdBy,
	}
	if err := s.TestRepo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) Get(id uint) (*model.Test, error) {
	test, err := s.TestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}
	return test, nil
}

func (s *TestService) List(skip, limit int) ([]model.Test, error) {
	return s.TestRepo.List(skip, limit)
}

// GetWithQuestions samples a fresh question set for one delivery of the
// test. Each call draws independently, so two students (or two calls) get
// different subsets. When the pool is smaller than question_count the whole
// pool is returned.
func (s *TestService) GetWithQuestions(id uint) (*model.TestWithQuestions, error) {
	test, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ExamTypeRepo.FindByID(test.ExamTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamTypeNotFound
		}
		return nil, err
	}
	if _, err := s.SubjectRepo.FindByID(test.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	pool, err := s.QuestionRepo.FindByExamTypeAndSubject(test.ExamTypeID, test.SubjectID)
	if err != nil {
		return nil, err
	}

	sampled := sampleQuestions(pool, test.QuestionCount)
	questions := make([]model.QuestionForTest, 0, len(sampled))
	for i := range sampled {
		questions = append(questions, sampled[i].ForTest())
	}
	return &model.TestWithQuestions{Test: *test, Questions: questions}, nil
}

// sampleQuestions draws n questions uniformly without replacement.
func sampleQuestions(pool []model.Question, n int) []model.Question {
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]model.Question, 0, n)
	for _, i := range rand.Perm(len(pool))[:n] {
		picked = append(picked, pool[i])
	}
	return picked
}

func (s *TestService) Update(id uint, patch model.TestPatch) (*model.Test, error) {
	test, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(test)
	if patch.QuestionCount != nil {
		test.TotalMarks = test.QuestionCount
		test.PassingMarks = test.QuestionCount / 2
	}
	if err := s.TestRepo.Update(test); err != nil {
		return nil, err
	}
	return test, nil
}

func (s *TestService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.TestRepo.Delete(id)
}
