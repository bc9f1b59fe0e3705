package users

import "time"

// User is the author referenced by change.user_id. Credentials live with the
// identity provider; only the display name and role are kept here.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"type:text;not null;uniqueIndex:idx_user_username"`
	Role     string `gorm:"type:text;not null;default:'user'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
