package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

// PackListFilter narrows and pages the pack listing. Zero values mean
// "no constraint".
type PackListFilter struct {
	OEM          string
	Model        string
	Market       string
	FuelType     string
	VehicleClass string
	Drivetrain   string
	Platform     string
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	SortDir      string
}

type PackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pack *types.Pack) error
	Save(ctx context.Context, tx *gorm.DB, pack *types.Pack) error
	GetActiveByID(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (*types.Pack, error)
	NaturalKeyExists(ctx context.Context, tx *gorm.DB, oem, model, variant string, year int, market string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter PackListFilter) ([]*types.Pack, int64, error)
	SoftDelete(ctx context.Context, tx *gorm.DB, packID uuid.UUID) error
}

type packRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPackRepo(db *gorm.DB, baseLog *logger.Logger) PackRepo {
	return &packRepo{db: db, log: baseLog.With("repo", "PackRepo")}
}

func (pr *packRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *packRepo) Create(ctx context.Context, tx *gorm.DB, pack *types.Pack) error {
	return pr.conn(tx).WithContext(ctx).Create(pack).Error
}

func (pr *packRepo) Save(ctx context.Context, tx *gorm.DB, pack *types.Pack) error {
	return pr.conn(tx).WithContext(ctx).Save(pack).Error
}

func (pr *packRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, packID uuid.UUID) (*types.Pack, error) {
	var pack types.Pack
	if err := pr.conn(tx).WithContext(ctx).
		Where("id = ? AND is_active = ?", packID, true).
		First(&pack).Error; err != nil {
		return nil, err
	}
	return &pack, nil
}

func (pr *packRepo) NaturalKeyExists(ctx context.Context, tx *gorm.DB, oem, model, variant string, year int, market string) (bool, error) {
	var count int64
	if err := pr.conn(tx).WithContext(ctx).
		Model(&types.Pack{}).
		Where("oem = ? AND model = ? AND variant = ? AND year = ? AND market = ?",
			oem, model, variant, year, market).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// sortColumns whitelists client-supplied sort keys; anything else falls
// back to created_at.
var sortColumns = map[string]string{
	"oem":        "oem",
	"model":      "model",
	"year":       "year",
	"market":     "market",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (pr *packRepo) List(ctx context.Context, tx *gorm.DB, filter PackListFilter) ([]*types.Pack, int64, error) {
	q := pr.conn(tx).WithContext(ctx).
		Model(&types.Pack{}).
		Where("is_active = ?", true)

	if filter.OEM != "" {
		q = q.Where("oem = ?", filter.OEM)
	}
	if filter.Model != "" {
		q = q.Where("model = ?", filter.Model)
	}
	if filter.Market != "" {
		q = q.Where("market = ?", filter.Market)
	}
	if filter.FuelType != "" {
		q = q.Where("fuel_type = ?", filter.FuelType)
	}
	if filter.VehicleClass != "" {
		q = q.Where("vehicle_class = ?", filter.VehicleClass)
	}
	if filter.Drivetrain != "" {
		q = q.Where("drivetrain = ?", filter.Drivetrain)
	}
	if filter.Platform != "" {
		q = q.Where("platform = ?", filter.Platform)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(oem) LIKE ? OR LOWER(model) LIKE ? OR LOWER(variant) LIKE ? OR LOWER(platform) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		dir = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var packs []*types.Pack
	if err := q.
		Order(sortCol + " " + dir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&packs).Error; err != nil {
		return nil, 0, err
	}
	return packs, total, nil
}

func (pr *packRepo) SoftDelete(ctx context.Context, tx *gorm.DB, packID uuid.UUID) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&types.Pack{}).
		Where("id = ?", packID).
		Update("is_active", false).Error
}
