package models

// User is a registered customer. Points is the loyalty balance.
type User struct {
	BaseModel
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string     `json:"-"`
	FullName       string     `json:"full_name"`
	Points         int        `gorm:"not null;default:0" json:"points"`
	CompletedTasks []UserTask `json:"completed_tasks,omitempty"`
}
