package dto

import "time"

type TaskRequest struct {
	UserID       string     `json:"user_id"`
	ProjectID    *string    `json:"project_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IsPriority   bool       `json:"is_priority"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	IsReminderOn bool       `json:"is_reminder_on"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
	Status       string     `json:"status"`
}

type ProjectRequest struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Icon      *string `json:"icon,omitempty"`
	IsDefault bool    `json:"is_default"`
}

type AssignProjectRequest struct {
	ProjectID string `json:"project_id"`
}

type PriorityRequest struct {
	IsPriority bool `json:"is_priority"`
}

type ReminderRequest struct {
	IsReminderOn bool       `json:"is_reminder_on"`
	ReminderDate *time.Time `json:"reminder_date,omitempty"`
}

type ProfileRequest struct {
	Username   string  `json:"username"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	Profession *string `json:"profession,omitempty"`
}
