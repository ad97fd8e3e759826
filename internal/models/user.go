package models

// User is a dashboard login. Passwords are stored in plain text, matching the
// original local-only deployment. Not suitable for anything internet-facing.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}
