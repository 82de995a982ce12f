package repository

import (
	"context"

	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	"tidynotes.com/tidynotes/internal/storage"
)

// ProfileRepository caches user profiles in a local backend for offline
// access. The remote copy is owned by the profile service.
type ProfileRepository struct {
	store storage.Backend
}

func NewProfileRepository(store storage.Backend) *ProfileRepository {
	return &ProfileRepository{store: store}
}

func (r *ProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	if profile.UserID == "" {
		return apperrors.ErrUserNotLoggedIn
	}
	if err := r.store.UpsertProfile(ctx, profile); err != nil {
		return apperrors.ErrProfileSaveFailed
	}
	return nil
}

func (r *ProfileRepository) ByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, apperrors.ErrUserNotLoggedIn
	}
	profile, err := r.store.ProfileByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrProfileFetchFailed
	}
	if profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

// Delete clears the local cache only; the remote document is untouched.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	if err := r.store.DeleteProfile(ctx, userID); err != nil {
		return apperrors.ErrProfileDeleteFailed
	}
	return nil
}
