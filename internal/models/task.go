package model

import (
	"time"

	"tidynotes.com/tidynotes/internal/constants"
)

type Task struct {
	ID           string               `gorm:"primaryKey;size:36" json:"id"`
	UserID       string               `gorm:"index;size:128" json:"user_id"`
	ProjectID    *string              `gorm:"size:36" json:"project_id,omitempty"`
	Title        string               `gorm:"not null" json:"title"`
	Description  string               `json:"description"`
	IsPriority   bool                 `json:"is_priority"`
	CreatedAt    time.Time            `json:"created_at"`
	DueDate      *time.Time           `json:"due_date,omitempty"`
	IsReminderOn bool                 `json:"is_reminder_on"`
	ReminderDate *time.Time           `json:"reminder_date,omitempty"`
	ImagePath    *string              `json:"image_path,omitempty"`
	Status       constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
}
