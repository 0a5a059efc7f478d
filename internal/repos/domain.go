package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

type DomainRepo interface {
	Create(ctx context.Context, tx *gorm.DB, domain *types.Domain) error
	GetByID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	// ListOrdered returns all domains by sort_order; when domainID is
	// non-nil only that domain is returned (still as a slice).
	ListOrdered(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*types.Domain, error)
}

type domainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDomainRepo(db *gorm.DB, baseLog *logger.Logger) DomainRepo {
	return &domainRepo{db: db, log: baseLog.With("repo", "DomainRepo")}
}

func (dr *domainRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return dr.db
}

func (dr *domainRepo) Create(ctx context.Context, tx *gorm.DB, domain *types.Domain) error {
	return dr.conn(tx).WithContext(ctx).Create(domain).Error
}

func (dr *domainRepo) GetByID(ctx context.Context, tx *gorm.DB, domainID uuid.UUID) (*types.Domain, error) {
	var domain types.Domain
	if err := dr.conn(tx).WithContext(ctx).
		Where("id = ?", domainID).
		First(&domain).Error; err != nil {
		return nil, err
	}
	return &domain, nil
}

func (dr *domainRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := dr.conn(tx).WithContext(ctx).
		Model(&types.Domain{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *domainRepo) ListOrdered(ctx context.Context, tx *gorm.DB, domainID *uuid.UUID) ([]*types.Domain, error) {
	q := dr.conn(tx).WithContext(ctx).Order("sort_order ASC")
	if domainID != nil {
		q = q.Where("id = ?", *domainID)
	}
	var domains []*types.Domain
	if err := q.Find(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}
