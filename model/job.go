package model

import "time"

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ImagePath string    `gorm:"type:varchar(255)" json:"image_path"` // URL path under /assets, empty when none
	CreatedAt time.Time `json:"created_at"`
	Tasks     []Task    `gorm:"foreignKey:JobID" json:"-"`
}
