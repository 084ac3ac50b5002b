package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	ExamTypeRepo *repository.ExamTypeRepository
	SubjectRepo  *repository.SubjectRepository
	Storage      *StorageService
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	examTypeRepo *repository.ExamTypeRepository,
	subjectRepo *repository.SubjectRepository,
	storage *StorageService,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		ExamTypeRepo: examTypeRepo,
		SubjectRepo:  subjectRepo,
		Storage:      storage,
	}
}

// QuestionInput is one question as submitted by admins, either singly or in
// a bulk payload. Options maps choice keys ("A", "B", ...) to their text.
type QuestionInput struct {
	QuestionText  string            `json:"question_text" binding:"required"`
	QuestionType  string            `json:"question_type"`
	Options       map[string]string `json:"options" binding:"required"`
	CorrectAnswer string            `json:"correct_answer" binding:"required"`
	Explanation   string            `json:"explanation"`
	ExamTypeID    uint              `json:"exam_type_id" binding:"required"`
	SubjectID     uint              `json:"subject_id" binding:"required"`
	Marks         int               `json:"marks"`
}

func (s *QuestionService) buildQuestion(in QuestionInput) (*model.Question, error) {
	options, err := json.Marshal(in.Options)
	if err != nil {
		return nil, err
	}
	explanation := in.Explanation
	if explanation == "" {
		explanation = " "
	}
	marks := in.Marks
	if marks <= 0 {
		marks = 1
	}
	questionType := in.QuestionType
	if questionType == "" {
		questionType = "multiple_choice"
	}
	return &model.Question{
		QuestionText:  in.QuestionText,
		QuestionType:  questionType,
		Options:       datatypes.JSON(options),
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   explanation,
		ExamTypeID:    in.ExamTypeID,
		SubjectID:     in.SubjectID,
		Marks:         marks,
	}, nil
}

func (s *QuestionService) checkRefs(examTypeID, subjectID uint) error {
	if _, err := s.ExamTypeRepo.FindByID(examTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamTypeNotFound
		}
		return err
	}
	if _, err := s.SubjectRepo.FindByID(subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	return nil
}

func (s *QuestionService) Create(in QuestionInput) (*model.Question, error) {
	if err := s.checkRefs(in.ExamTypeID, in.SubjectID); err != nil {
		return nil, err
	}
	question, err := s.buildQuestion(in)
	if err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// CreateBatch inserts all questions or none. Every referenced exam type and
// subject must exist before a row is written.
func (s *QuestionService) CreateBatch(inputs []QuestionInput) ([]model.Question, error) {
	type refPair struct{ examType, subject uint }
	seen := make(map[refPair]bool)
	questions := make([]model.Question, 0, len(inputs))
	for _, in := range inputs {
		pair := refPair{in.ExamTypeID, in.SubjectID}
		if !seen[pair] {
			if err := s.checkRefs(in.ExamTypeID, in.SubjectID); err != nil {
				return nil, err
			}
			seen[pair] = true
		}
		question, err := s.buildQuestion(in)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

// List filters by exam type and subject; zero values leave a filter off.
func (s *QuestionService) List(examTypeID, subjectID uint, skip, limit int) ([]model.Question, error) {
	return s.QuestionRepo.List(examTypeID, subjectID, skip, limit)
}

func (s *QuestionService) ListByExamType(examTypeID uint) ([]model.Question, error) {
	return s.QuestionRepo.FindByExamType(examTypeID)
}

func (s *QuestionService) ListByExamTypeAndSubject(examTypeID, subjectID uint) ([]model.Question, error) {
	return s.QuestionRepo.FindByExamTypeAndSubject(examTypeID, subjectID)
}

func (s *QuestionService) ListBySubject(subjectID uint) ([]model.Question, error) {
	return s.QuestionRepo.FindBySubject(subjectID)
}

func (s *QuestionService) Update(id uint, patch model.QuestionPatch) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.ExamTypeID != nil || patch.SubjectID != nil {
		examTypeID := question.ExamTypeID
		if patch.ExamTypeID != nil {
			examTypeID = *patch.ExamTypeID
		}
		subjectID := question.SubjectID
		if patch.SubjectID != nil {
			subjectID = *patch.SubjectID
		}
		if err := s.checkRefs(examTypeID, subjectID); err != nil {
			return nil, err
		}
	}
	if err := patch.Apply(question); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// Delete removes the question row. Stored images are cleaned up so object
// storage does not accumulate orphans.
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	question, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}
	if question.QuestionImage != nil {
		s.Storage.RemoveImage(ctx, *question.QuestionImage)
	}
	if question.ExplanationImage != nil {
		s.Storage.RemoveImage(ctx, *question.ExplanationImage)
	}
	return nil
}

// AttachImage stores an uploaded image on the question. category selects
// the question image itself or the explanation image. Replacing an image
// removes the previous file.
func (s *QuestionService) AttachImage(ctx context.Context, id uint, category string, fh *multipart.FileHeader) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := util.ValidateImageUpload(fh, s.Storage.Upload); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	stored, err := s.Storage.SaveImage(ctx, category, util.RandomFilename(fh.Filename), src, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	old := s.imageField(question, category)
	if *old != nil {
		s.Storage.RemoveImage(ctx, **old)
	}
	*old = &stored

	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DetachImage clears the image of the given category and deletes the file.
func (s *QuestionService) DetachImage(ctx context.Context, id uint, category string) (*model.Question, error) {
	question, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	field := s.imageField(question, category)
	if *field != nil {
		s.Storage.RemoveImage(ctx, **field)
		*field = nil
		if err := s.QuestionRepo.Update(question); err != nil {
			return nil, err
		}
	}
	return question, nil
}

func (s *QuestionService) imageField(q *model.Question, category string) **string {
	if category == util.ImageCategoryExplanation {
		return &q.ExplanationImage
	}
	return &q.QuestionImage
}
