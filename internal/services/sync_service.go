package services

import (
	"context"

	"go.uber.org/zap"

	"tidynotes.com/tidynotes/internal/cloud"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	"tidynotes.com/tidynotes/internal/storage"
)

// SyncService reconciles the local task set with the remote document store.
// The pull direction is a deliberate destructive replace-merge: local-only
// unsynced changes for the user are discarded.
type SyncService struct {
	cloud cloud.Store
	local storage.Backend
	log   *zap.Logger
}

func NewSyncService(cloudStore cloud.Store, local storage.Backend, log *zap.Logger) *SyncService {
	return &SyncService{
		cloud: cloudStore,
		local: local,
		log:   log,
	}
}

// SyncFromCloud fetches the remote task set for the user, then deletes the
// user's local tasks and inserts the fetched set inside one local write
// transaction. Last writer wins wholesale.
func (s *SyncService) SyncFromCloud(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUserNotLoggedIn
	}

	tasks, err := s.cloud.TasksByUser(ctx, userID)
	if err != nil {
		s.log.Error("cloud fetch failed", zap.String("user_id", userID), zap.Error(err))
		return apperrors.NetworkError(err.Error())
	}

	if err := s.local.ReplaceUserTasks(ctx, userID, tasks); err != nil {
		s.log.Error("local replace failed", zap.String("user_id", userID), zap.Error(err))
		return apperrors.ErrTaskUpdateFailed
	}

	s.log.Info("synced from cloud", zap.String("user_id", userID), zap.Int("tasks", len(tasks)))
	return nil
}

// PushToCloud uploads the user's local task set, one document per task.
// Best effort: a failed put aborts with the remaining tasks unsent.
func (s *SyncService) PushToCloud(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.ErrUserNotLoggedIn
	}

	tasks, err := s.local.Tasks(ctx, storage.TaskFilter{UserID: userID})
	if err != nil {
		return apperrors.ErrTaskFetchFailed
	}

	for _, task := range tasks {
		if err := s.cloud.PutTask(ctx, task); err != nil {
			s.log.Error("cloud put failed", zap.String("task_id", task.ID), zap.Error(err))
			return apperrors.NetworkError(err.Error())
		}
	}

	s.log.Info("pushed to cloud", zap.String("user_id", userID), zap.Int("tasks", len(tasks)))
	return nil
}

// DeleteTask removes a task locally and remotely. Both sides treat an
// absent record as success.
func (s *SyncService) DeleteTask(ctx context.Context, id string) error {
	if err := s.local.DeleteTask(ctx, id); err != nil {
		return apperrors.ErrTaskDeleteFailed
	}
	if err := s.cloud.DeleteTask(ctx, id); err != nil {
		return apperrors.NetworkError(err.Error())
	}
	return nil
}

// ClearLocal wipes the local task collection. Used by the logout flow; the
// remote store is untouched.
func (s *SyncService) ClearLocal(ctx context.Context) error {
	if err := s.local.DeleteAllTasks(ctx); err != nil {
		return apperrors.ErrTaskDeleteFailed
	}
	return nil
}
