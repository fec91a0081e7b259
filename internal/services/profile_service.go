package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/models"
	"confeitaria/internal/storage"
)

// profileService handles profile reads, edits and avatar uploads.
type profileService struct {
	db       *gorm.DB
	store    storage.AvatarStore
	maxBytes int64
	log      *zap.SugaredLogger
}

// NewProfileService creates a new ProfileServicer. Avatars larger than
// maxBytes are rejected.
func NewProfileService(db *gorm.DB, store storage.AvatarStore, maxBytes int64, log *zap.SugaredLogger) ProfileServicer {
	return &profileService{db: db, store: store, maxBytes: maxBytes, log: log}
}

// GetProfile retrieves the caller's profile.
func (s *profileService) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpdateProfile applies the non-nil fields of update.
func (s *profileService) UpdateProfile(userID string, update ProfileUpdate) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "Campos obrigatórios: full_name")
		}
		updates["full_name"] = name
	}
	for column, value := range map[string]*string{
		"phone":    update.Phone,
		"address":  update.Address,
		"city":     update.City,
		"state":    update.State,
		"zip_code": update.ZipCode,
	} {
		if value != nil {
			updates[column] = strings.TrimSpace(*value)
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.GetProfile(userID)
	}
	return profile, nil
}

// UploadAvatar normalizes the image, stores it and points the profile at
// it. The previous avatar is removed afterwards; failing to remove it is
// only logged.
func (s *profileService) UploadAvatar(ctx context.Context, userID string, data []byte) (*models.Profile, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.ErrAvatarTooLarge
	}
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	normalized, err := storage.NormalizeAvatar(data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, apperrors.ErrAvatarInvalid
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	key := fmt.Sprintf("%s/%d.jpg", userID, time.Now().UnixMilli())
	url, err := s.store.Put(ctx, key, normalized, storage.AvatarContentType)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	oldKey := profile.AvatarKey
	if err := s.db.Model(profile).Updates(map[string]any{
		"avatar_url": url,
		"avatar_key": key,
	}).Error; err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Errorw("failed to remove unreferenced avatar", "key", key, "error", delErr)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if oldKey != "" && oldKey != key {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			s.log.Warnw("failed to delete previous avatar", "user_id", userID, "key", oldKey, "error", err)
		}
	}

	profile.AvatarURL = url
	profile.AvatarKey = key
	return profile, nil
}
