package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type FieldRepo interface {
	Create(ctx context.Context, tx *gorm.DB, field *types.Field) error
	Save(ctx context.Context, tx *gorm.DB, field *types.Field) error
	GetByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error)
	GetActiveByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error)
	NameExistsInDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID, name string) (bool, error)
	ListActiveByDomainIDs(ctx context.Context, tx *gorm.DB, domainIDs []uuid.UUID) ([]*types.Field, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) error
}

type fieldRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFieldRepo(db *gorm.DB, baseLog *logger.Logger) FieldRepo {
	return &fieldRepo{db: db, log: baseLog.With("repo", "FieldRepo")}
}

func (fr *fieldRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fr.db
}

func (fr *fieldRepo) Create(ctx context.Context, tx *gorm.DB, field *types.Field) error {
	return fr.conn(tx).WithContext(ctx).Create(field).Error
}

func (fr *fieldRepo) Save(ctx context.Context, tx *gorm.DB, field *types.Field) error {
	return fr.conn(tx).WithContext(ctx).Save(field).Error
}

func (fr *fieldRepo) GetByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error) {
	var field types.Field
	if err := fr.conn(tx).WithContext(ctx).
		Where("id = ?", fieldID).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (fr *fieldRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error) {
	var field types.Field
	if err := fr.conn(tx).WithContext(ctx).
		Where("id = ? AND is_active = ?", fieldID, true).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

func (fr *fieldRepo) NameExistsInDomain(ctx context.Context, tx *gorm.DB, domainID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := fr.conn(tx).WithContext(ctx).
		Model(&types.Field{}).
		Where("domain_id = ? AND name = ?", domainID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (fr *fieldRepo) ListActiveByDomainIDs(ctx context.Context, tx *gorm.DB, domainIDs []uuid.UUID) ([]*types.Field, error) {
	var fields []*types.Field
	if len(domainIDs) == 0 {
		return fields, nil
	}
	if err := fr.conn(tx).WithContext(ctx).
		Where("domain_id IN ? AND is_active = ?", domainIDs, true).
		Order("sort_order ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (fr *fieldRepo) SoftDelete(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) error {
	return fr.conn(tx).WithContext(ctx).
		Model(&types.Field{}).
		Where("id = ?", fieldID).
		Update("is_active", false).Error
}
