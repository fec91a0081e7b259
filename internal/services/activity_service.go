package services

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	apperrors "confeitaria/internal/errors"
	"confeitaria/internal/logger"
	"confeitaria/internal/models"
	"confeitaria/internal/pagination"
)

// activityService records and lists the activities feed.
type activityService struct {
	db *gorm.DB
}

// NewActivityService creates a new ActivityServicer.
func NewActivityService(db *gorm.DB) ActivityServicer {
	return &activityService{db: db}
}

// Log records an activity. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *activityService) Log(entry ActivityEntry) {
	var changesJSON string
	if entry.Changes != nil {
		data, err := json.Marshal(entry.Changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal activity changes", "error", err, "action", entry.Action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	activity := &models.Activity{
		Owned:        models.Owned{UserID: entry.UserID},
		Category:     entry.Category,
		Action:       entry.Action,
		Description:  entry.Description,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		IPAddress:    entry.IPAddress,
		Changes:      changesJSON,
	}

	if err := s.db.Create(activity).Error; err != nil {
		logger.Get().Errorw("failed to create activity entry",
			"error", err,
			"user_id", entry.UserID,
			"action", entry.Action,
			"resource_type", entry.ResourceType,
			"resource_id", entry.ResourceID,
		)
	}
}

// ListActivities returns the newest activities first.
func (s *activityService) ListActivities(userID string, filter ActivityFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Activity], error) {
	q := s.db.Model(&models.Activity{}).Where("user_id = ?", userID)
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("(LOWER(action) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	result, err := pagination.Fetch[models.Activity](q.Order("created_at DESC"), page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}
