package model

import (
	"time"

	"gorm.io/datatypes"
)

// UserPublic is the user object embedded in auth responses.
type UserPublic struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
}

func (u *User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// LoginResponse is returned by login and refresh-token.
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        UserPublic `json:"user"`
}

// QuestionForTest is the exam-delivery view of a question: the grading key
// and explanation are withheld.
type QuestionForTest struct {
	ID            uint           `json:"id"`
	ExamTypeID    uint           `json:"exam_type_id"`
	SubjectID     uint           `json:"subject_id"`
	QuestionText  string         `json:"question_text"`
	QuestionImage *string        `json:"question_image"`
	QuestionType  string         `json:"question_type"`
	Options       datatypes.JSON `json:"options"`
	Marks         int            `json:"marks"`
}

func (q *Question) ForTest() QuestionForTest {
	return QuestionForTest{
		ID:            q.ID,
		ExamTypeID:    q.ExamTypeID,
		SubjectID:     q.SubjectID,
		QuestionText:  q.QuestionText,
		QuestionImage: q.QuestionImage,
		QuestionType:  q.QuestionType,
		Options:       q.Options,
		Marks:         q.Marks,
	}
}

// TestWithQuestions is a test plus the question subset sampled for this read.
type TestWithQuestions struct {
	Test
	Questions []QuestionForTest `json:"questions"`
}

// AttemptSummary is the uniform read shape for test-backed and practice
// attempts; for practice rows the test fields are synthesized.
type AttemptSummary struct {
	Attempt
	TestTitle    string `json:"test_title"`
	TotalMarks   int    `json:"total_marks"`
	PassingMarks int    `json:"passing_marks"`
}

// AnswerResult is the per-question detail inside a result.
type AnswerResult struct {
	QuestionID    uint   `json:"question_id"`
	QuestionText  string `json:"question_text"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	MarksObtained int    `json:"marks_obtained"`
	TotalMarks    int    `json:"total_marks"`
	Explanation   string `json:"explanation"`
}

// ResultResponse is the graded view of a completed attempt.
type ResultResponse struct {
	AttemptID      uint           `json:"attempt_id"`
	UserID         uint           `json:"user_id"`
	TestID         *uint          `json:"test_id"`
	TestTitle      string         `json:"test_title"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time"`
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `json:"correct_answers"`
	Score          int            `json:"score"`
	Percentage     float64        `json:"percentage"`
	Passed         bool           `json:"passed"`
	Answers        []AnswerResult `json:"answers"`
}

// LeaderboardEntry ranks a user by mean percentage over completed attempts.
type LeaderboardEntry struct {
	UserID            uint    `json:"user_id"`
	Username          string  `json:"username"`
	FullName          string  `json:"full_name"`
	AveragePercentage float64 `json:"average_percentage"`
	Attempts          int     `json:"attempts"`
	LatestTest        string  `json:"latest_test"`
}

// TestAnalytics aggregates completed attempts for one test. When no
// completed attempt exists, Message is set and the stat fields stay absent.
type TestAnalytics struct {
	TestID            uint     `json:"test_id"`
	Message           string   `json:"message,omitempty"`
	TotalAttempts     int      `json:"total_attempts"`
	PassedAttempts    *int     `json:"passed_attempts,omitempty"`
	PassRate          *float64 `json:"pass_rate,omitempty"`
	AverageScore      *float64 `json:"average_score,omitempty"`
	AveragePercentage *float64 `json:"average_percentage,omitempty"`
	HighestScore      *int     `json:"highest_score,omitempty"`
	LowestScore       *int     `json:"lowest_score,omitempty"`
}

// BulkUserDetail is the per-row outcome of a bulk user upload.
type BulkUserDetail struct {
	Username string `json:"username"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// BulkUploadResult reports a bulk user upload; rows commit one by one, so a
// failure never rolls back its predecessors.
type BulkUploadResult struct {
	TotalProcessed int              `json:"total_processed"`
	Successful     int              `json:"successful"`
	Failed         int              `json:"failed"`
	Details        []BulkUserDetail `json:"details"`
}

// Forum DTOs keep the camelCase keys of the legacy forum API.

type ForumAuthor struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type ForumPostView struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Image     *string     `json:"image"`
	Author    ForumAuthor `json:"author"`
	Likes     int         `json:"likes"`
	Replies   int         `json:"replies"`
	Liked     bool        `json:"liked"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ForumPostList struct {
	Posts       []ForumPostView `json:"posts"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

type ForumReplyView struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	Author    ForumAuthor `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ForumLikeResult struct {
	PostID  string `json:"postId"`
	Likes   int    `json:"likes"`
	Message string `json:"message"`
}
