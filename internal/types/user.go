package types

import (
	"time"
)

type User struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"firstName"`
	LastName  string    `gorm:"not null;column:last_name" json:"lastName"`
	Role      string    `gorm:"not null;default:user;column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}

func (u *User) ParsedRole() Role {
	return ParseRole(u.Role)
}
