package model

// Answer records one graded submission inside an attempt. Rows are never
// mutated after insert.
//
// swagger:model Answer
type Answer struct {
	BaseModel
	AttemptID     uint   `gorm:"index;not null" json:"attempt_id"`
	QuestionID    uint   `gorm:"not null" json:"question_id"`
	AnswerText    string `gorm:"type:text" json:"answer_text"`
	IsCorrect     bool   `gorm:"default:false" json:"is_correct"`
	MarksObtained int    `gorm:"default:0" json:"marks_obtained"`
	TimeSpent     int    `gorm:"default:0" json:"time_spent"`
}

func (Answer) TableName() string {
	return "answers"
}
