package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type CommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) error
	ListByValueID(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) ([]*types.Comment, error)
	CountByValueIDs(ctx context.Context, tx *gorm.DB, valueIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type commentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommentRepo {
	return &commentRepo{db: db, log: baseLog.With("repo", "CommentRepo")}
}

func (cr *commentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *commentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.Comment) error {
	return cr.conn(tx).WithContext(ctx).Create(comment).Error
}

func (cr *commentRepo) ListByValueID(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) ([]*types.Comment, error) {
	var comments []*types.Comment
	if err := cr.conn(tx).WithContext(ctx).
		Where("value_id = ?", valueID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (cr *commentRepo) CountByValueIDs(ctx context.Context, tx *gorm.DB, valueIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(valueIDs))
	if len(valueIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ValueID uuid.UUID
		Count   int
	}
	if err := cr.conn(tx).WithContext(ctx).
		Model(&types.Comment{}).
		Select("value_id, COUNT(*) AS count").
		Where("value_id IN ?", valueIDs).
		Group("value_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ValueID] = row.Count
	}
	return counts, nil
}
