package service

import (
	"testing"
	"time"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestResultService(db *gorm.DB) *ResultService {
	return NewResultService(
		repository.NewAttemptRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewTestRepository(db),
		newTestAttemptService(db),
	)
}

func TestGetAttemptResult(t *testing.T) {
	db := setupTestDB(t)
	attempts := newTestAttemptService(db)
	results := newTestResultService(db)
	owner := seedUser(t, db, "ada", model.Student)
	other := seedUser(t, db, "ben", model.Student)
	examType, subject := seedCatalog(t, db)
	q1 := seedQuestion(t, db, examType.ID, subject.ID, "What is B?", "B")
	q2 := seedQuestion(t, db, examType.ID, subject.ID, "What is C?", "C")

	test, err := newTestTestService(db).Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 10,
		QuestionCount:   2,
	}, owner.ID)
	require.NoError(t, err)

	started, err := attempts.Start(owner.ID, test.ID)
	require.NoError(t, err)

	// Still in progress: no result yet, for anyone.
	_, err = results.GetAttemptResult(started.ID, owner)
	require.ErrorIs(t, err, util.ErrAttemptNotCompleted)

	submitted, err := attempts.Submit(owner.ID, started.ID, []AnswerSubmission{
		{QuestionID: q1.ID, AnswerText: "B"},
		{QuestionID: q2.ID, AnswerText: "D"},
	})
	require.NoError(t, err)

	got, err := results.GetAttemptResult(started.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, submitted.Score, got.Score)
	assert.Equal(t, 1, got.CorrectAnswers)
	assert.Equal(t, 2, got.TotalQuestions)
	assert.Equal(t, test.Title, got.TestTitle)
	assert.InDelta(t, submitted.Percentage, got.Percentage, 0.001)
	require.Len(t, got.Answers, 2)
	assert.Equal(t, "B", got.Answers[0].CorrectAnswer)
	assert.Equal(t, "Because B.", got.Answers[0].Explanation)

	_, err = results.GetAttemptResult(started.ID, other)
	require.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = results.GetAttemptResult(9999, owner)
	require.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestResultOmitsDeletedQuestionDetail(t *testing.T) {
	db := setupTestDB(t)
	attempts := newTestAttemptService(db)
	results := newTestResultService(db)
	owner := seedUser(t, db, "ada", model.Student)
	examType, subject := seedCatalog(t, db)
	q1 := seedQuestion(t, db, examType.ID, subject.ID, "What is B?", "B")
	q2 := seedQuestion(t, db, examType.ID, subject.ID, "What is C?", "C")

	test, err := newTestTestService(db).Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 10,
		QuestionCount:   2,
	}, owner.ID)
	require.NoError(t, err)

	started, err := attempts.Start(owner.ID, test.ID)
	require.NoError(t, err)
	_, err = attempts.Submit(owner.ID, started.ID, []AnswerSubmission{
		{QuestionID: q1.ID, AnswerText: "B"},
		{QuestionID: q2.ID, AnswerText: "wrong"},
	})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&model.Question{}, q2.ID).Error)

	got, err := results.GetAttemptResult(started.ID, owner)
	require.NoError(t, err)

	// The stored score is untouched; only the detail row disappears.
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 1, got.CorrectAnswers)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, q1.ID, got.Answers[0].QuestionID)
}

func TestGetUserResultsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	attempts := newTestAttemptService(db)
	results := newTestResultService(db)
	owner := seedUser(t, db, "ada", model.Student)
	teacher := seedUser(t, db, "carol", model.Teacher)
	_, subject := seedCatalog(t, db)

	_, err := attempts.SavePractice(owner.ID, PracticeInput{
		SubjectID: subject.ID, Score: 1, TotalQuestions: 2, TimeSpent: 7200,
	})
	require.NoError(t, err)
	newer, err := attempts.SavePractice(owner.ID, PracticeInput{
		SubjectID: subject.ID, Score: 2, TotalQuestions: 2, TimeSpent: 60,
	})
	require.NoError(t, err)

	got, err := results.GetUserResults(owner.ID, teacher)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].AttemptID)
	assert.Equal(t, "Physics Practice", got[0].TestTitle)
	assert.Equal(t, 2, got[0].TotalQuestions)
	assert.Equal(t, 2, got[0].Score)

	_, err = results.GetUserResults(owner.ID, seedUser(t, db, "ben", model.Student))
	require.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestGetTestAnalyticsNoAttempts(t *testing.T) {
	db := setupTestDB(t)
	results := newTestResultService(db)
	owner := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)

	test, err := newTestTestService(db).Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 10,
		QuestionCount:   5,
	}, owner.ID)
	require.NoError(t, err)

	got, err := results.GetTestAnalytics(test.ID)
	require.NoError(t, err)
	assert.Equal(t, "No completed attempts found", got.Message)
	assert.Equal(t, 0, got.TotalAttempts)
	assert.Nil(t, got.PassRate)
	assert.Nil(t, got.AverageScore)

	_, err = results.GetTestAnalytics(9999)
	require.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestGetTestAnalyticsAggregates(t *testing.T) {
	db := setupTestDB(t)
	results := newTestResultService(db)
	owner := seedUser(t, db, "ada", model.Admin)
	examType, subject := seedCatalog(t, db)

	test, err := newTestTestService(db).Create(TestInput{
		ExamTypeID:      examType.ID,
		SubjectID:       subject.ID,
		DurationMinutes: 10,
		QuestionCount:   4,
	}, owner.ID)
	require.NoError(t, err)

	record := func(userID uint, score int, pct float64, passed bool) {
		end := time.Now()
		require.NoError(t, db.Create(&model.Attempt{
			UserID:     userID,
			TestID:     &test.ID,
			SubjectID:  &subject.ID,
			StartTime:  end.Add(-10 * time.Minute),
			EndTime:    &end,
			Status:     model.AttemptCompleted,
			Score:      intPtr(score),
			Percentage: floatPtr(pct),
			Passed:     boolPtr(passed),
		}).Error)
	}
	record(owner.ID, 3, 75, true)
	record(seedUser(t, db, "ben", model.Student).ID, 1, 25, false)

	got, err := results.GetTestAnalytics(test.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalAttempts)
	require.NotNil(t, got.PassedAttempts)
	assert.Equal(t, 1, *got.PassedAttempts)
	require.NotNil(t, got.PassRate)
	assert.InDelta(t, 50, *got.PassRate, 0.001)
	require.NotNil(t, got.AverageScore)
	assert.InDelta(t, 2, *got.AverageScore, 0.001)
	require.NotNil(t, got.AveragePercentage)
	assert.InDelta(t, 50, *got.AveragePercentage, 0.001)
	require.NotNil(t, got.HighestScore)
	assert.Equal(t, 3, *got.HighestScore)
	require.NotNil(t, got.LowestScore)
	assert.Equal(t, 1, *got.LowestScore)
}
