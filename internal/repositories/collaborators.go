package repository

import "time"

// ReminderNotifier is the notification scheduler collaborator. The core
// only stores reminder fields; scheduling is external.
type ReminderNotifier interface {
	ScheduleReminder(taskID, title string, at time.Time)
	CancelReminder(taskID string)
}

// ImageStore persists raw attachment bytes and returns a stable path
// reference. The core does not interpret image contents.
type ImageStore interface {
	SaveImage(taskID string, data []byte) (string, error)
}
