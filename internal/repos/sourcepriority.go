package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type SourcePriorityRepo interface {
	// GetByUserID returns (nil, nil) when the user has no stored
	// preference; the service layer falls back to the default order.
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SourcePriority, error)
	Upsert(ctx context.Context, tx *gorm.DB, priority *types.SourcePriority) error
}

type sourcePriorityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourcePriorityRepo(db *gorm.DB, baseLog *logger.Logger) SourcePriorityRepo {
	return &sourcePriorityRepo{db: db, log: baseLog.With("repo", "SourcePriorityRepo")}
}

func (spr *sourcePriorityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return spr.db
}

func (spr *sourcePriorityRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.SourcePriority, error) {
	var priority types.SourcePriority
	err := spr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&priority).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

func (spr *sourcePriorityRepo) Upsert(ctx context.Context, tx *gorm.DB, priority *types.SourcePriority) error {
	return spr.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"priority_order"}),
		}).
		Create(priority).Error
}
