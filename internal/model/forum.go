package model

// ForumPost keeps the UUID primary key of the legacy forum schema; likes and
// replies reference it by that id.
//
// swagger:model ForumPost
type ForumPost struct {
	UUIDBase
	UserID    uint    `gorm:"index;not null" json:"user_id"`
	SubjectID uint    `gorm:"index;not null" json:"subject_id"`
	Title     string  `gorm:"size:300;not null" json:"title"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	ImagePath *string `gorm:"size:500" json:"image_path"`
}

func (ForumPost) TableName() string {
	return "forum_posts"
}

// swagger:model ForumLike
type ForumLike struct {
	BaseModel
	PostID string `gorm:"size:36;index;uniqueIndex:idx_forum_like_post_user;not null" json:"post_id"`
	UserID uint   `gorm:"uniqueIndex:idx_forum_like_post_user;not null" json:"user_id"`
}

func (ForumLike) TableName() string {
	return "forum_likes"
}

// swagger:model ForumReply
type ForumReply struct {
	BaseModel
	PostID  string `gorm:"size:36;index;not null" json:"post_id"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (ForumReply) TableName() string {
	return "forum_replies"
}
