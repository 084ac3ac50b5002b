package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	ExamTypeID  uint   `gorm:"index;not null" json:"exam_type_id"`
}

func (Subject) TableName() string {
	return "subjects"
}

type SubjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ExamTypeID  *uint   `json:"exam_type_id"`
}

func (p *SubjectPatch) Apply(s *Subject) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.ExamTypeID != nil {
		s.ExamTypeID = *p.ExamTypeID
	}
}
