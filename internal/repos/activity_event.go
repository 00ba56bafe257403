package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ActivityEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.ActivityEvent) (*types.ActivityEvent, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.ActivityEvent, error)
}

type activityEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityEventRepo(db *gorm.DB, baseLog *logger.Logger) ActivityEventRepo {
	repoLog := baseLog.With("repo", "ActivityEventRepo")
	return &activityEventRepo{db: db, log: repoLog}
}

func (r *activityEventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.ActivityEvent) (*types.ActivityEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

func (r *activityEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string, limit int) ([]*types.ActivityEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.ActivityEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
