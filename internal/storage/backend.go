package storage

import (
	"context"

	model "tidynotes.com/tidynotes/internal/models"
)

// TaskFilter narrows a task listing. Zero fields match everything.
type TaskFilter struct {
	UserID    string
	ProjectID string
}

// Backend is the storage contract shared by the in-memory and the local
// persistent store. All operations are keyed by primary id:
//
//   - upserts are idempotent, last write wins on all fields
//   - fetch-by-id returns (nil, nil) when the record is absent; signaling
//     not-found is the caller's job
//   - deletes of absent ids succeed
//   - task listings are ordered by creation time descending, project
//     listings default-first then name ascending
type Backend interface {
	UpsertTask(ctx context.Context, task *model.Task) error
	TaskByID(ctx context.Context, id string) (*model.Task, error)
	Tasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteAllTasks(ctx context.Context) error

	// ReplaceUserTasks removes every task owned by userID and inserts the
	// given set in a single write transaction. Used by the replace-merge
	// cloud sync.
	ReplaceUserTasks(ctx context.Context, userID string, tasks []model.Task) error

	UpsertProject(ctx context.Context, project *model.Project) error
	ProjectByID(ctx context.Context, id string) (*model.Project, error)
	Projects(ctx context.Context) ([]model.Project, error)
	DeleteProject(ctx context.Context, id string) error
	DeleteAllProjects(ctx context.Context) error

	UpsertProfile(ctx context.Context, profile *model.UserProfile) error
	ProfileByID(ctx context.Context, userID string) (*model.UserProfile, error)
	DeleteProfile(ctx context.Context, userID string) error
	DeleteAllProfiles(ctx context.Context) error
}
