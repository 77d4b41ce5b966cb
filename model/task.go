package model

import "time"

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"type:varchar(32);index;not null;default:todo" json:"status"`
	AssigneeID  *uint      `gorm:"index" json:"assignee_id"`
	JobID       *uint      `gorm:"index" json:"job_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Notes       []Note     `gorm:"foreignKey:TaskID" json:"-"`
}
