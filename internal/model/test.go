package model

// Test is a template for a graded session. Questions are not bound at
// creation; they are sampled from the matching question pool on read.
//
// swagger:model Test
type Test struct {
	BaseModel
	Title           string `gorm:"size:200;not null" json:"title"`
	ExamTypeID      uint   `gorm:"index;not null" json:"exam_type_id"`
	SubjectID       uint   `gorm:"index;not null" json:"subject_id"`
	DurationMinutes int    `gorm:"not null" json:"duration_minutes"`
	QuestionCount   int    `gorm:"not null" json:"question_count"`
	TotalMarks      int    `gorm:"not null" json:"total_marks"`
	PassingMarks    int    `gorm:"not null" json:"passing_marks"`
	IsActive        bool   `gorm:"default:true" json:"is_active"`
	CreatedBy       uint   `json:"created_by"`
}

func (Test) TableName() string {
	return "tests"
}

type TestPatch struct {
	Title           *string `json:"title"`
	DurationMinutes *int    `json:"duration_minutes"`
	QuestionCount   *int    `json:"question_count"`
	IsActive        *bool   `json:"is_active"`
}

func (p *TestPatch) Apply(t *Test) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DurationMinutes != nil {
		t.DurationMinutes = *p.DurationMinutes
	}
	if p.QuestionCount != nil {
		t.QuestionCount = *p.QuestionCount
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
}
