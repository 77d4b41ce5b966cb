package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"` // normalized: trimmed, lowercase
	FullName     string    `gorm:"type:varchar(120);not null" json:"full_name"`
	Role         string    `gorm:"type:varchar(16);not null;default:member" json:"role"` // manager | member
	PasswordHash string    `gorm:"type:varchar(120);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsManager reports whether the user holds the elevated role.
func (u User) IsManager() bool {
	return u.Role == "manager"
}
