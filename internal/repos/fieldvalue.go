package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type FieldValueRepo interface {
	Create(ctx context.Context, tx *gorm.DB, value *types.FieldValue) error
	Save(ctx context.Context, tx *gorm.DB, value *types.FieldValue) error
	GetActiveByID(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) (*types.FieldValue, error)
	// ListActiveForPack returns the competing values for a pack across
	// the given fields, in a deterministic retrieval order
	// (created_at, then id) that the resolver's stable sort preserves
	// within equal priority ranks.
	ListActiveForPack(ctx context.Context, tx *gorm.DB, packID uuid.UUID, fieldIDs []uuid.UUID) ([]*types.FieldValue, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) error
}

type fieldValueRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldValueRepo(db *gorm.DB, baseLog *logger.Logger) FieldValueRepo {
	return &fieldValueRepo{db: db, log: baseLog.With("repo", "FieldValueRepo")}
}

func (vr *fieldValueRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return vr.db
}

func (vr *fieldValueRepo) Create(ctx context.Context, tx *gorm.DB, value *types.FieldValue) error {
	return vr.conn(tx).WithContext(ctx).Create(value).Error
}

func (vr *fieldValueRepo) Save(ctx context.Context, tx *gorm.DB, value *types.FieldValue) error {
	return vr.conn(tx).WithContext(ctx).Save(value).Error
}

func (vr *fieldValueRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) (*types.FieldValue, error) {
	var value types.FieldValue
	if err := vr.conn(tx).WithContext(ctx).
		Where("id = ? AND is_active = ?", valueID, true).
		First(&value).Error; err != nil {
		return nil, err
	}
	return &value, nil
}

func (vr *fieldValueRepo) ListActiveForPack(ctx context.Context, tx *gorm.DB, packID uuid.UUID, fieldIDs []uuid.UUID) ([]*types.FieldValue, error) {
	var values []*types.FieldValue
	if len(fieldIDs) == 0 {
		return values, nil
	}
	if err := vr.conn(tx).WithContext(ctx).
		Where("pack_id = ? AND field_id IN ? AND is_active = ?", packID, fieldIDs, true).
		Order("created_at ASC, id ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (vr *fieldValueRepo) SoftDelete(ctx context.Context, tx *gorm.DB, valueID uuid.UUID) error {
	return vr.conn(tx).WithContext(ctx).
		Model(&types.FieldValue{}).
		Where("id = ?", valueID).
		Update("is_active", false).Error
}
