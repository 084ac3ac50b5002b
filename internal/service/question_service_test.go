package service

import (
	"context"
	"encoding/json"
	"testing"

	"cbt_backend/internal/config"
	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewExamTypeRepository(db),
		repository.NewSubjectRepository(db),
		NewStorageService(&config.Config{}),
	)
}

func TestCreateQuestionAppliesDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestQuestionService(db)
	examType, subject := seedCatalog(t, db)

	question, err := svc.Create(QuestionInput{
		QuestionText:  "What is the SI unit of force?",
		Options:       map[string]string{"A": "Newton", "B": "Joule", "C": "Watt", "D": "Pascal"},
		CorrectAnswer: "A",
		ExamTypeID:    examType.ID,
		SubjectID:     subject.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, question.ID)
	assert.Equal(t, "multiple_choice", question.QuestionType)
	assert.Equal(t, 1, question.Marks)
	assert.Equal(t, " ", question.Explanation)

	var options map[string]string
	require.NoError(t, json.Unmarshal(question.Options, &options))
	assert.Equal(t, "Newton", options["A"])
	assert.Len(t, options, 4)

	_, err = svc.Create(QuestionInput{
		QuestionText:  "Orphaned exam type",
		Options:       map[string]string{"A": "x", "B": "y"},
		CorrectAnswer: "A",
		ExamTypeID:    9999,
		SubjectID:     subject.ID,
	})
	assert.ErrorIs(t, err, util.ErrExamTypeNotFound)

	_, err = svc.Create(QuestionInput{
		QuestionText:  "Orphaned subject",
		Options:       map[string]string{"A": "x", "B": "y"},
		CorrectAnswer: "A",
		ExamTypeID:    examType.ID,
		SubjectID:     9999,
	})
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestQuestionService(db)
	examType, subject := seedCatalog(t, db)

	input := func(text string, subjectID uint) QuestionInput {
		return QuestionInput{
			QuestionText:  text,
			Options:       map[string]string{"A": "yes", "B": "no"},
			CorrectAnswer: "A",
			ExamTypeID:    examType.ID,
			SubjectID:     subjectID,
		}
	}

	_, err := svc.CreateBatch([]QuestionInput{
		input("Good one", subject.ID),
		input("Bad ref", 9999),
		input("Good two", subject.ID),
	})
	require.ErrorIs(t, err, util.ErrSubjectNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Question{}).Count(&count).Error)
	assert.Zero(t, count, "a failed batch must write nothing")

	created, err := svc.CreateBatch([]QuestionInput{
		input("Q1", subject.ID),
		input("Q2", subject.ID),
		input("Q3", subject.ID),
	})
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, q := range created {
		assert.NotZero(t, q.ID)
		assert.Equal(t, 1, q.Marks)
	}

	require.NoError(t, db.Model(&model.Question{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestListQuestionsFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestQuestionService(db)
	examType, physics := seedCatalog(t, db)
	chemistry := &model.Subject{Name: "Chemistry", ExamTypeID: examType.ID}
	require.NoError(t, db.Create(chemistry).Error)

	seedQuestion(t, db, examType.ID, physics.ID, "P1?", "A")
	seedQuestion(t, db, examType.ID, physics.ID, "P2?", "B")
	seedQuestion(t, db, examType.ID, chemistry.ID, "C1?", "C")

	all, err := svc.List(0, 0, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	physicsOnly, err := svc.List(examType.ID, physics.ID, 0, 100)
	require.NoError(t, err)
	require.Len(t, physicsOnly, 2)
	assert.Equal(t, "P1?", physicsOnly[0].QuestionText)

	paged, err := svc.List(0, 0, 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "P2?", paged[0].QuestionText)

	pool, err := svc.ListByExamTypeAndSubject(examType.ID, chemistry.ID)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "C1?", pool[0].QuestionText)

	bySubject, err := svc.ListBySubject(physics.ID)
	require.NoError(t, err)
	assert.Len(t, bySubject, 2)

	byExamType, err := svc.ListByExamType(examType.ID)
	require.NoError(t, err)
	assert.Len(t, byExamType, 3)
}

func TestUpdateQuestionPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestQuestionService(db)
	examType, subject := seedCatalog(t, db)
	question := seedQuestion(t, db, examType.ID, subject.ID, "Old text?", "A")

	updated, err := svc.Update(question.ID, model.QuestionPatch{
		QuestionText:  strPtr("New text?"),
		CorrectAnswer: strPtr("B"),
		Options:       map[string]string{"A": "left", "B": "right"},
		Marks:         intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "New text?", updated.QuestionText)
	assert.Equal(t, "B", updated.CorrectAnswer)
	assert.Equal(t, 2, updated.Marks)

	stored, err := svc.Get(question.ID)
	require.NoError(t, err)
	var options map[string]string
	require.NoError(t, json.Unmarshal(stored.Options, &options))
	assert.Equal(t, map[string]string{"A": "left", "B": "right"}, options)

	_, err = svc.Update(question.ID, model.QuestionPatch{SubjectID: uintPtr(9999)})
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
	_, err = svc.Update(question.ID, model.QuestionPatch{ExamTypeID: uintPtr(9999)})
	assert.ErrorIs(t, err, util.ErrExamTypeNotFound)
	_, err = svc.Update(9999, model.QuestionPatch{})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestDeleteQuestion(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestQuestionService(db)
	examType, subject := seedCatalog(t, db)
	question := seedQuestion(t, db, examType.ID, subject.ID, "Short lived?", "A")

	require.NoError(t, svc.Delete(context.Background(), question.ID))

	_, err := svc.Get(question.ID)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	err = svc.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
