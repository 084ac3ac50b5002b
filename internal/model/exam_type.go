package model

// swagger:model ExamType
type ExamType struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (ExamType) TableName() string {
	return "exam_types"
}

type ExamTypePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p *ExamTypePatch) Apply(e *ExamType) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}
