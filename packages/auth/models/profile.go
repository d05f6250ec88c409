package models

import "time"

// Profile mirrors an identity of the hosted auth provider. ID is the token
// subject.
type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Email       string    `json:"email" gorm:"size:255"`
	DisplayName string    `json:"display_name" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
