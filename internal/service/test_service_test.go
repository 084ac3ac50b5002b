package service

import (
	"encoding/json"
	"testing"

	"cbt_backend/internal/model"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTestDerivesTitleAndMarks(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	user := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)

	test, err := svc.Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 45,
		QuestionCount:   25,
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "JAMB Physics Test", test.Title)
	assert.Equal(t, 25, test.TotalMarks)
	assert.Equal(t, 12, test.PassingMarks)
	assert.True(t, test.IsActive)
	assert.Equal(t, user.ID, test.CreatedBy)
}

func TestCreateTestUnknownRefs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	examType, _ := seedCatalog(t, db)

	_, err := svc.Create(TestInput{ExamTypeID: 42, SubjectID: 1, DurationMinutes: 10, QuestionCount: 5}, 1)
	require.ErrorIs(t, err, util.ErrExamTypeNotFound)

	_, err = svc.Create(TestInput{ExamTypeID: examType.ID, SubjectID: 42, DurationMinutes: 10, QuestionCount: 5}, 1)
	require.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestGetWithQuestionsSamplesSubset(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	user := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)
	pool := seedQuestionPool(t, db, examType.ID, subject.ID, 10)

	test, err := svc.Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 30,
		QuestionCount:   4,
	}, user.ID)
	require.NoError(t, err)

	got, err := svc.GetWithQuestions(test.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 4)

	poolIDs := make(map[uint]bool, len(pool))
	for _, q := range pool {
		poolIDs[q.ID] = true
	}
	seen := make(map[uint]bool)
	for _, q := range got.Questions {
		assert.True(t, poolIDs[q.ID], "question %d not in pool", q.ID)
		assert.False(t, seen[q.ID], "question %d sampled twice", q.ID)
		seen[q.ID] = true
	}

	// The delivery payload must not leak the key or the explanation.
	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_answer")
	assert.NotContains(t, string(raw), "Because")
}

func TestGetWithQuestionsPoolSmallerThanCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	user := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)
	seedQuestionPool(t, db, examType.ID, subject.ID, 2)

	test, err := svc.Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 30,
		QuestionCount:   5,
	}, user.ID)
	require.NoError(t, err)

	got, err := svc.GetWithQuestions(test.ID)
	require.NoError(t, err)
	assert.Len(t, got.Questions, 2)
	assert.Equal(t, 5, got.QuestionCount)
}

func TestUpdateTestRecomputesMarks(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	user := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)

	test, err := svc.Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 30,
		QuestionCount:   10,
	}, user.ID)
	require.NoError(t, err)

	// A title-only patch leaves the marks alone.
	renamed, err := svc.Update(test.ID, model.TestPatch{Title: strPtr("Midterm Mock")})
	require.NoError(t, err)
	assert.Equal(t, "Midterm Mock", renamed.Title)
	assert.Equal(t, 10, renamed.TotalMarks)
	assert.Equal(t, 5, renamed.PassingMarks)

	resized, err := svc.Update(test.ID, model.TestPatch{QuestionCount: intPtr(21)})
	require.NoError(t, err)
	assert.Equal(t, 21, resized.QuestionCount)
	assert.Equal(t, 21, resized.TotalMarks)
	assert.Equal(t, 10, resized.PassingMarks)
}

func TestDeleteTest(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestTestService(db)
	user := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)

	test, err := svc.Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 30,
		QuestionCount:   5,
	}, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(test.ID))
	_, err = svc.Get(test.ID)
	require.ErrorIs(t, err, util.ErrTestNotFound)

	require.ErrorIs(t, svc.Delete(9999), util.ErrTestNotFound)
}

func TestSampleQuestionsSizes(t *testing.T) {
	pool := make([]model.Question, 5)
	for i := range pool {
		pool[i].ID = uint(i + 1)
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"fewer than pool", 3, 3},
		{"whole pool", 5, 5},
		{"more than pool", 8, 5},
		{"zero", 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			picked := sampleQuestions(pool, tc.n)
			require.Len(t, picked, tc.want)
			seen := make(map[uint]bool)
			for _, q := range picked {
				assert.False(t, seen[q.ID])
				seen[q.ID] = true
			}
		})
	}
}
