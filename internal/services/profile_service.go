package services

import (
	"context"

	"go.uber.org/zap"

	"tidynotes.com/tidynotes/internal/cloud"
	apperrors "tidynotes.com/tidynotes/internal/errors"
	model "tidynotes.com/tidynotes/internal/models"
	repository "tidynotes.com/tidynotes/internal/repositories"
)

// ProfileService is cloud-first: the remote document is authoritative and
// the local cache exists for offline access.
type ProfileService struct {
	cloud cloud.Store
	local *repository.ProfileRepository
	log   *zap.Logger
}

func NewProfileService(cloudStore cloud.Store, local *repository.ProfileRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{
		cloud: cloudStore,
		local: local,
		log:   log,
	}
}

// Fetch reads the remote profile, mirroring a hit into the local cache.
// When the remote store is unreachable or the document is missing, the
// local cache answers instead.
func (s *ProfileService) Fetch(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, apperrors.ErrUserNotLoggedIn
	}

	profile, err := s.cloud.ProfileByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("cloud profile fetch failed, falling back to local cache",
			zap.String("user_id", userID), zap.Error(err))
	}
	if err == nil && profile != nil {
		if mirrorErr := s.local.Save(ctx, profile); mirrorErr != nil {
			s.log.Warn("profile mirror failed", zap.Error(mirrorErr))
		}
		return profile, nil
	}

	return s.local.ByUserID(ctx, userID)
}

// Save writes through: remote first, then the local mirror.
func (s *ProfileService) Save(ctx context.Context, profile *model.UserProfile) error {
	if profile.UserID == "" {
		return apperrors.ErrUserNotLoggedIn
	}

	if err := s.cloud.PutProfile(ctx, *profile); err != nil {
		return apperrors.NetworkError(err.Error())
	}
	return s.local.Save(ctx, profile)
}

// DeleteLocal clears the cached profile on account removal. The remote
// document is untouched.
func (s *ProfileService) DeleteLocal(ctx context.Context, userID string) error {
	return s.local.Delete(ctx, userID)
}
