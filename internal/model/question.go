package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// swagger:model Question
type Question struct {
	BaseModel
	ExamTypeID       uint           `gorm:"index;not null" json:"exam_type_id"`
	SubjectID        uint           `gorm:"index;not null" json:"subject_id"`
	QuestionText     string         `gorm:"type:text;not null" json:"question_text"`
	QuestionImage    *string        `gorm:"size:255" json:"question_image"`
	QuestionType     string         `gorm:"size:50;default:multiple_choice" json:"question_type"`
	Options          datatypes.JSON `json:"options"`
	CorrectAnswer    string         `gorm:"size:255;not null" json:"correct_answer"`
	Explanation      string         `gorm:"type:text;default:' '" json:"explanation"`
	ExplanationImage *string        `gorm:"size:255" json:"explanation_image"`
	Marks            int            `gorm:"default:1" json:"marks"`
}

func (Question) TableName() string {
	return "questions"
}

type QuestionPatch struct {
	ExamTypeID    *uint             `json:"exam_type_id"`
	SubjectID     *uint             `json:"subject_id"`
	QuestionText  *string           `json:"question_text"`
	QuestionType  *string           `json:"question_type"`
	Options       map[string]string `json:"options"`
	CorrectAnswer *string           `json:"correct_answer"`
	Explanation   *string           `json:"explanation"`
	Marks         *int              `json:"marks"`
}

func (p *QuestionPatch) Apply(q *Question) error {
	if p.ExamTypeID != nil {
		q.ExamTypeID = *p.ExamTypeID
	}
	if p.SubjectID != nil {
		q.SubjectID = *p.SubjectID
	}
	if p.QuestionText != nil {
		q.QuestionText = *p.QuestionText
	}
	if p.QuestionType != nil {
		q.QuestionType = *p.QuestionType
	}
	if p.Options != nil {
		raw, err := json.Marshal(p.Options)
		if err != nil {
			return err
		}
		q.Options = datatypes.JSON(raw)
	}
	if p.CorrectAnswer != nil {
		q.CorrectAnswer = *p.CorrectAnswer
	}
	if p.Explanation != nil {
		q.Explanation = *p.Explanation
	}
	if p.Marks != nil {
		q.Marks = *p.Marks
	}
	return nil
}
