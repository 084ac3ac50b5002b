package service

import (
	"errors"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"gorm.io/gorm"
)

type ResultService struct {
	AttemptRepo  *repository.AttemptRepository
	QuestionRepo *repository.QuestionRepository
	TestRepo     *repository.TestRepository
	Attempts     *AttemptService
}

func NewResultService(
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
	testRepo *repository.TestRepository,
	attempts *AttemptService,
) *ResultService {
	return &ResultService{
		AttemptRepo:  attemptRepo,
		QuestionRepo: questionRepo,
		TestRepo:     testRepo,
		Attempts:     attempts,
	}
}

// GetAttemptResult returns the graded detail of a completed attempt.
// Answers whose question has since been deleted are left out of the detail
// list; the stored score is reported unchanged.
func (s *ResultService) GetAttemptResult(attemptID uint, caller *model.User) (*model.ResultResponse, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if !canViewAttempts(caller, attempt.UserID) {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Status != model.AttemptCompleted {
		return nil, util.ErrAttemptNotCompleted
	}
	return s.buildResult(*attempt)
}

// GetUserResults returns the full result payload for every completed
// attempt of the user, newest first.
func (s *ResultService) GetUserResults(userID uint, caller *model.User) ([]model.ResultResponse, error) {
	if !canViewAttempts(caller, userID) {
		return nil, util.ErrPermissionDenied
	}
	attempts, err := s.AttemptRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	results := make([]model.ResultResponse, 0, len(attempts))
	for _, attempt := range attempts {
		result, err := s.buildResult(attempt)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *ResultService) buildResult(attempt model.Attempt) (*model.ResultResponse, error) {
	answers, err := s.AttemptRepo.GetAnswers(attempt.ID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	correct := 0
	details := make([]model.AnswerResult, 0, len(answers))
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		question, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		details = append(details, model.AnswerResult{
			QuestionID:    a.QuestionID,
			QuestionText:  question.QuestionText,
			UserAnswer:    a.AnswerText,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     a.IsCorrect,
			MarksObtained: a.MarksObtained,
			TotalMarks:    1,
			Explanation:   question.Explanation,
		})
	}

	maps, err := s.Attempts.loadDescriptors([]model.Attempt{attempt})
	if err != nil {
		return nil, err
	}
	sum := maps.summarize(attempt)

	result := &model.ResultResponse{
		AttemptID:      attempt.ID,
		UserID:         attempt.UserID,
		TestID:         attempt.TestID,
		TestTitle:      sum.TestTitle,
		StartTime:      attempt.StartTime,
		EndTime:        attempt.EndTime,
		TotalQuestions: sum.TotalMarks,
		CorrectAnswers: correct,
		Answers:        details,
	}
	if attempt.Score != nil {
		result.Score = *attempt.Score
	}
	if attempt.Percentage != nil {
		result.Percentage = *attempt.Percentage
	}
	if attempt.Passed != nil {
		result.Passed = *attempt.Passed
	}
	return result, nil
}

// GetTestAnalytics aggregates completed attempts of one test. A test nobody
// has finished yet gets an explicit no-data payload rather than zeros that
// look like real statistics.
func (s *ResultService) GetTestAnalytics(testID uint) (*model.TestAnalytics, error) {
	if _, err := s.TestRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	attempts, err := s.AttemptRepo.FindCompletedByTest(testID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return &model.TestAnalytics{
			TestID:        testID,
			Message:       "No completed attempts found",
			TotalAttempts: 0,
		}, nil
	}

	passed := 0
	scoreSum := 0
	pctSum := 0.0
	highest := 0
	lowest := 0
	for i, a := range attempts {
		score := 0
		if a.Score != nil {
			score = *a.Score
		}
		if a.Percentage != nil {
			pctSum += *a.Percentage
		}
		if a.Passed != nil && *a.Passed {
			passed++
		}
		scoreSum += score
		if i == 0 || score > highest {
			highest = score
		}
		if i == 0 || score < lowest {
			lowest = score
		}
	}

	total := len(attempts)
	passRate := float64(passed) / float64(total) * 100
	avgScore := float64(scoreSum) / float64(total)
	avgPct := pctSum / float64(total)

	return &model.TestAnalytics{
		TestID:            testID,
		TotalAttempts:     total,
		PassedAttempts:    &passed,
		PassRate:          &passRate,
		AverageScore:      &avgScore,
		AveragePercentage: &avgPct,
		HighestScore:      &highest,
		LowestScore:       &lowest,
	}, nil
}
