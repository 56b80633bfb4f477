package model

import "time"

// User stores account information for a registered user.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Password  string    `gorm:"size:64;not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
