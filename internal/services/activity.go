package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// ActivityService records mutations for audit views. Record never
// returns an error: a failed write is logged and dropped so it cannot
// fail the mutation that produced it.
type ActivityService interface {
	Record(ctx context.Context, userID, action, entityType, entityID string, payload map[string]any)
	List(ctx context.Context, userID string, limit int) ([]*types.ActivityEvent, error)
}

type activityService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.ActivityEventRepo
}

func NewActivityService(db *gorm.DB, log *logger.Logger, eventRepo repos.ActivityEventRepo) ActivityService {
	serviceLog := log.With("service", "ActivityService")
	return &activityService{db: db, log: serviceLog, eventRepo: eventRepo}
}

func (as *activityService) Record(ctx context.Context, userID, action, entityType, entityID string, payload map[string]any) {
	raw := datatypes.JSON([]byte("{}"))
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			as.log.Warn("Failed to encode activity payload", "action", action, "error", err)
		} else {
			raw = datatypes.JSON(encoded)
		}
	}
	event := &types.ActivityEvent{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := as.eventRepo.Create(ctx, nil, event); err != nil {
		as.log.Warn("Failed to record activity event", "action", action, "user_id", userID, "error", err)
	}
}

func (as *activityService) List(ctx context.Context, userID string, limit int) ([]*types.ActivityEvent, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	events, err := as.eventRepo.GetByUserID(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity events: %w", err)
	}
	return events, nil
}
