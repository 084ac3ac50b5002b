package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	// AttemptAbandoned exists in the schema vocabulary but no flow produces
	// it; there is no timeout sweeper.
	AttemptAbandoned AttemptStatus = "abandoned"
)

// Attempt is one user's session against a Test, or an ad-hoc practice
// session when TestID is nil. The aggregate fields (EndTime, Score,
// Percentage, Passed, TimeTaken) stay nil while in progress and are written
// exactly once, atomically, at completion.
//
// swagger:model Attempt
type Attempt struct {
	BaseModel
	UserID     uint          `gorm:"index;not null" json:"user_id"`
	TestID     *uint         `gorm:"index" json:"test_id"`
	SubjectID  *uint         `gorm:"index" json:"subject_id"`
	ExamTypeID *uint         `json:"exam_type_id"`
	IsPractice bool          `gorm:"default:false" json:"is_practice"`
	StartTime  time.Time     `gorm:"not null" json:"start_time"`
	EndTime    *time.Time    `json:"end_time"`
	Status     AttemptStatus `gorm:"size:20;default:in_progress" json:"status"`
	Score      *int          `json:"score"`
	Percentage *float64      `json:"percentage"`
	Passed     *bool         `json:"passed"`
	TimeTaken  *int          `json:"time_taken"`
}

func (Attempt) TableName() string {
	return "attempts"
}
