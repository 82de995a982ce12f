package cloud

import (
	"context"

	model "tidynotes.com/tidynotes/internal/models"
)

// Store is the remote document store. Documents live at collection/id using
// the same primary ids as the local backends; there is no separate remote id.
// Every call returns exactly one terminal outcome and never partial writes.
type Store interface {
	PutTask(ctx context.Context, task model.Task) error
	// TasksByUser returns every task document whose owner matches userID.
	TasksByUser(ctx context.Context, userID string) ([]model.Task, error)
	// DeleteTask treats an absent document as success.
	DeleteTask(ctx context.Context, id string) error

	PutProfile(ctx context.Context, profile model.UserProfile) error
	ProfileByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	DeleteProfile(ctx context.Context, userID string) error
}
