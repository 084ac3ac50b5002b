package model

import "time"

// swagger:model News
type News struct {
	BaseModel
	Title     string    `gorm:"size:500;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"size:500" json:"image_url"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedBy uint      `json:"created_by"`
}

func (News) TableName() string {
	return "news"
}

type NewsPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"image_url"`
}

func (p *NewsPatch) Apply(n *News) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.ImageURL != nil {
		n.ImageURL = p.ImageURL
	}
}
