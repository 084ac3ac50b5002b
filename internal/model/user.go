package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username       string   `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword string   `gorm:"size:100;not null" json:"-"`
	FullName       string   `gorm:"size:100" json:"full_name"`
	Role           UserRole `gorm:"size:20;default:student" json:"role"`
	IsActive       bool     `gorm:"default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// UserPatch carries a partial update; nil fields are left untouched.
// Password is handled by the service (it must be re-hashed), everything else
// merges here.
type UserPatch struct {
	Email    *string   `json:"email"`
	FullName *string   `json:"full_name"`
	Role     *UserRole `json:"role"`
	IsActive *bool     `json:"is_active"`
	Password *string   `json:"password"`
}

func (p *UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
