package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"cbt_backend/internal/model"
	"cbt_backend/internal/repository"
	"cbt_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 60 * time.Second
	leaderboardSize     = 10
)

type AttemptService struct {
	AttemptRepo  *repository.AttemptRepository
	TestRepo     *repository.TestRepository
	QuestionRepo *repository.QuestionRepository
	SubjectRepo  *repository.SubjectRepository
	UserRepo     *repository.UserRepository
	DB           *gorm.DB
	Redis        *redis.Client
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	testRepo *repository.TestRepository,
	questionRepo *repository.QuestionRepository,
	subjectRepo *repository.SubjectRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
	redisClient *redis.Client,
) *AttemptService {
	return &AttemptService{
		AttemptRepo:  attemptRepo,
		TestRepo:     testRepo,
		QuestionRepo: questionRepo,
		SubjectRepo:  subjectRepo,
		UserRepo:     userRepo,
		DB:           db,
		Redis:        redisClient,
	}
}

// AnswerSubmission is one answer in a submit payload.
type AnswerSubmission struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text"`
	TimeSpent  int    `json:"time_spent"`
}

// PracticeAnswer mirrors AnswerSubmission for practice sessions, where the
// client grades locally and reports the verdict.
type PracticeAnswer struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
	TimeSpent  int    `json:"time_spent"`
}

// PracticeInput is a finished practice session reported after the fact.
type PracticeInput struct {
	SubjectID      uint             `json:"subject_id" binding:"required"`
	ExamTypeID     *uint            `json:"exam_type_id"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions" binding:"required,gt=0"`
	TimeSpent      int              `json:"time_spent"`
	Answers        []PracticeAnswer `json:"answers"`
}

// Start opens an attempt against a test. Several attempts of the same test
// may be in progress at once; grading happens only at submit.
func (s *AttemptService) Start(userID, testID uint) (*model.AttemptSummary, error) {
	test, err := s.TestRepo.FindByID(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	attempt := &model.Attempt{
		UserID:     userID,
		TestID:     &test.ID,
		SubjectID:  &test.SubjectID,
		ExamTypeID: &test.ExamTypeID,
		StartTime:  time.Now(),
		Status:     model.AttemptInProgress,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	sum := model.AttemptSummary{Attempt: *attempt}
	sum.TestTitle = test.Title
	sum.TotalMarks = test.TotalMarks
	sum.PassingMarks = test.PassingMarks
	return &sum, nil
}

// Submit grades an in-progress attempt and finalizes it in one transaction.
// Answers for questions that no longer exist are skipped without error. The
// status flip is guarded by a conditional update, so when two submissions
// race, exactly one wins and the other sees ErrAttemptCompleted.
func (s *AttemptService) Submit(userID, attemptID uint, submissions []AnswerSubmission) (*model.ResultResponse, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Status != model.AttemptInProgress || attempt.TestID == nil {
		return nil, util.ErrAttemptCompleted
	}

	test, err := s.TestRepo.FindByID(*attempt.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTestNotFound
		}
		return nil, err
	}

	questionIDs := make([]uint, 0, len(submissions))
	for _, sub := range submissions {
		questionIDs = append(questionIDs, sub.QuestionID)
	}
	questions, err := s.QuestionRepo.FindByIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	score := 0
	answers := make([]model.Answer, 0, len(submissions))
	details := make([]model.AnswerResult, 0, len(submissions))
	for _, sub := range submissions {
		question, ok := questions[sub.QuestionID]
		if !ok {
			continue
		}
		correct := answersMatch(sub.AnswerText, question.CorrectAnswer)
		marks := 0
		if correct {
			marks = 1
			score++
		}
		answers = append(answers, model.Answer{
			AttemptID:     attempt.ID,
			QuestionID:    question.ID,
			AnswerText:    sub.AnswerText,
			IsCorrect:     correct,
			MarksObtained: marks,
			TimeSpent:     sub.TimeSpent,
		})
		details = append(details, model.AnswerResult{
			QuestionID:    question.ID,
			QuestionText:  question.QuestionText,
			UserAnswer:    sub.AnswerText,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     correct,
			MarksObtained: marks,
			TotalMarks:    1,
			Explanation:   question.Explanation,
		})
	}

	now := time.Now()
	percentage := 0.0
	if test.TotalMarks > 0 {
		percentage = float64(score) / float64(test.TotalMarks) * 100
	}
	passed := score >= test.PassingMarks
	timeTaken := int(now.Sub(attempt.StartTime).Seconds())

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Attempt{}).
			Where("id = ? AND status = ?", attempt.ID, model.AttemptInProgress).
			Updates(map[string]interface{}{
				"status":     model.AttemptCompleted,
				"end_time":   now,
				"score":      score,
				"percentage": percentage,
				"passed":     passed,
				"time_taken": timeTaken,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrAttemptCompleted
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(context.Background())

	return &model.ResultResponse{
		AttemptID:      attempt.ID,
		UserID:         attempt.UserID,
		TestID:         attempt.TestID,
		TestTitle:      test.Title,
		StartTime:      attempt.StartTime,
		EndTime:        &now,
		TotalQuestions: test.TotalMarks,
		CorrectAnswers: score,
		Score:          score,
		Percentage:     percentage,
		Passed:         passed,
		Answers:        details,
	}, nil
}

// answersMatch compares an answer to the key ignoring case and surrounding
// whitespace.
func answersMatch(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// SavePractice records a self-graded practice session. The attempt is born
// completed: the start time is backdated by the reported duration and the
// pass verdict uses a fixed 50 percent bar.
func (s *AttemptService) SavePractice(userID uint, in PracticeInput) (*model.AttemptSummary, error) {
	subject, err := s.SubjectRepo.FindByID(in.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}

	now := time.Now()
	start := now.Add(-time.Duration(in.TimeSpent) * time.Second)
	percentage := 0.0
	if in.TotalQuestions > 0 {
		percentage = float64(in.Score) / float64(in.TotalQuestions) * 100
	}
	passed := percentage >= 50

	attempt := &model.Attempt{
		UserID:     userID,
		SubjectID:  &in.SubjectID,
		ExamTypeID: in.ExamTypeID,
		IsPractice: true,
		StartTime:  start,
		EndTime:    &now,
		Status:     model.AttemptCompleted,
		Score:      &in.Score,
		Percentage: &percentage,
		Passed:     &passed,
		TimeTaken:  &in.TimeSpent,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if len(in.Answers) == 0 {
			return nil
		}
		answers := make([]model.Answer, 0, len(in.Answers))
		for _, a := range in.Answers {
			marks := 0
			if a.IsCorrect {
				marks = 1
			}
			answers = append(answers, model.Answer{
				AttemptID:     attempt.ID,
				QuestionID:    a.QuestionID,
				AnswerText:    a.AnswerText,
				IsCorrect:     a.IsCorrect,
				MarksObtained: marks,
				TimeSpent:     a.TimeSpent,
			})
		}
		return tx.Create(&answers).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(context.Background())

	sum := model.AttemptSummary{Attempt: *attempt}
	sum.TestTitle = subject.Name + " Practice"
	sum.TotalMarks = in.TotalQuestions
	sum.PassingMarks = 50
	return &sum, nil
}

// Get returns one attempt. Students see only their own; teachers and admins
// see any.
func (s *AttemptService) Get(attemptID uint, caller *model.User) (*model.AttemptSummary, error) {
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

	maps, err := s.loadDescriptors([]model.Attempt{*attempt})
	if err != nil {
		return nil, err
	}
	sum := maps.summarize(*attempt)
	return &sum, nil
}

// ListForUser returns a user's attempts, newest first.
func (s *AttemptService) ListForUser(userID uint, caller *model.User) ([]model.AttemptSummary, error) {
	if !canViewAttempts(caller, userID) {
		return nil, util.ErrPermissionDenied
	}
	attempts, err := s.AttemptRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(attempts)
}

func (s *AttemptService) summaries(attempts []model.Attempt) ([]model.AttemptSummary, error) {
	maps, err := s.loadDescriptors(attempts)
	if err != nil {
		return nil, err
	}
	out := make([]model.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, maps.summarize(a))
	}
	return out, nil
}

func canViewAttempts(caller *model.User, ownerID uint) bool {
	return caller.ID == ownerID || caller.Role == model.Teacher || caller.Role == model.Admin
}

// descriptorMaps resolves the test or subject an attempt points at, in one
// query per table rather than one per attempt.
type descriptorMaps struct {
	tests    map[uint]model.Test
	subjects map[uint]model.Subject
}

func (s *AttemptService) loadDescriptors(attempts []model.Attempt) (*descriptorMaps, error) {
	var testIDs, subjectIDs []uint
	seenTests := make(map[uint]bool)
	seenSubjects := make(map[uint]bool)
	for _, a := range attempts {
		if a.TestID != nil && !seenTests[*a.TestID] {
			seenTests[*a.TestID] = true
			testIDs = append(testIDs, *a.TestID)
		}
		if a.TestID == nil && a.SubjectID != nil && !seenSubjects[*a.SubjectID] {
			seenSubjects[*a.SubjectID] = true
			subjectIDs = append(subjectIDs, *a.SubjectID)
		}
	}

	tests, err := s.TestRepo.FindByIDs(testIDs)
	if err != nil {
		return nil, err
	}
	subjects, err := s.SubjectRepo.FindByIDs(subjectIDs)
	if err != nil {
		return nil, err
	}
	return &descriptorMaps{tests: tests, subjects: subjects}, nil
}

// summarize fills the descriptor fields of one attempt. Deleted tests and
// subjects degrade to placeholder titles instead of failing the read.
func (m *descriptorMaps) summarize(a model.Attempt) model.AttemptSummary {
	sum := model.AttemptSummary{Attempt: a}
	if a.TestID != nil {
		if test, ok := m.tests[*a.TestID]; ok {
			sum.TestTitle = test.Title
			sum.TotalMarks = test.TotalMarks
			sum.PassingMarks = test.PassingMarks
		} else {
			sum.TestTitle = "Unknown Test"
		}
		return sum
	}

	title := "Practice"
	if a.SubjectID != nil {
		if subject, ok := m.subjects[*a.SubjectID]; ok {
			title = subject.Name + " Practice"
		}
	}
	sum.TestTitle = title
	sum.TotalMarks = practiceTotal(a)
	sum.PassingMarks = 50
	return sum
}

// practiceTotal back-computes how many questions a practice session had from
// its score and percentage, since the count itself is not stored.
func practiceTotal(a model.Attempt) int {
	if a.Score != nil && a.Percentage != nil && *a.Percentage > 0 {
		return int(math.Round(float64(*a.Score) * 100 / *a.Percentage))
	}
	return 0
}

// Leaderboard ranks users by their mean percentage over completed attempts
// and returns the top ten. The result is cached in Redis for a minute when a
// client is configured.
func (s *AttemptService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Bytes(); err == nil {
			var entries []model.LeaderboardEntry
			if json.Unmarshal(cached, &entries) == nil {
				return entries, nil
			}
		}
	}

	attempts, err := s.AttemptRepo.FindCompleted()
	if err != nil {
		return nil, err
	}

	type userStats struct {
		sum    float64
		count  int
		latest model.Attempt
	}
	var order []uint
	stats := make(map[uint]*userStats)
	for _, a := range attempts {
		st, ok := stats[a.UserID]
		if !ok {
			st = &userStats{latest: a}
			stats[a.UserID] = st
			order = append(order, a.UserID)
		}
		if a.Percentage != nil {
			st.sum += *a.Percentage
		}
		st.count++
		if a.StartTime.After(st.latest.StartTime) {
			st.latest = a
		}
	}

	users, err := s.UserRepo.FindByIDs(order)
	if err != nil {
		return nil, err
	}

	var latestAttempts []model.Attempt
	for _, userID := range order {
		latestAttempts = append(latestAttempts, stats[userID].latest)
	}
	maps, err := s.loadDescriptors(latestAttempts)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		user, ok := users[userID]
		if !ok {
			continue
		}
		st := stats[userID]
		entries = append(entries, model.LeaderboardEntry{
			UserID:            userID,
			Username:          user.Username,
			FullName:          user.FullName,
			AveragePercentage: st.sum / float64(st.count),
			Attempts:          st.count,
			LatestTest:        maps.summarize(st.latest).TestTitle,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AveragePercentage > entries[j].AveragePercentage
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, raw, leaderboardCacheTTL)
		}
	}
	return entries, nil
}

// invalidateLeaderboard drops the cached ranking after a new completion.
func (s *AttemptService) invalidateLeaderboard(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, leaderboardCacheKey)
	}
}
