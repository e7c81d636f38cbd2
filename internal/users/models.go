package users

import "time"

type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname  string    `gorm:"type:varchar(64);not null" json:"nickname"`
	Password  *string   `gorm:"type:varchar(255)" json:"-"` // unused, passwordless login
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }
