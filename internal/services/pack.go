package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type CreatePackInput struct {
	OEM          string `json:"oem"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Variant      string `json:"variant"`
	Market       string `json:"market"`
	FuelType     string `json:"fuel_type"`
	VehicleClass string `json:"vehicle_class"`
	Drivetrain   string `json:"drivetrain"`
	Platform     string `json:"platform"`
}

type UpdatePackInput struct {
	OEM          *string `json:"oem,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Variant      *string `json:"variant,omitempty"`
	Market       *string `json:"market,omitempty"`
	FuelType     *string `json:"fuel_type,omitempty"`
	VehicleClass *string `json:"vehicle_class,omitempty"`
	Drivetrain   *string `json:"drivetrain,omitempty"`
	Platform     *string `json:"platform,omitempty"`
}

type PackService interface {
	List(ctx context.Context, filter repos.PackListFilter) (*types.PackListResponse, error)
	Create(ctx context.Context, userID uuid.UUID, input CreatePackInput) (*types.PackResponse, error)
	// GetDetail returns the pack plus its full resolution for the
	// requesting user.
	GetDetail(ctx context.Context, packID, userID uuid.UUID) (*types.PackDetailResponse, error)
	Update(ctx context.Context, packID uuid.UUID, input UpdatePackInput) (*types.PackResponse, error)
	SoftDelete(ctx context.Context, packID uuid.UUID) error
}

type packService struct {
	db       *gorm.DB
	log      *logger.Logger
	packRepo repos.PackRepo
	userRepo repos.UserRepo
	resolver ResolverService
}

func NewPackService(db *gorm.DB, log *logger.Logger, packRepo repos.PackRepo, userRepo repos.UserRepo, resolver ResolverService) PackService {
	return &packService{
		db:       db,
		log:      log.With("service", "PackService"),
		packRepo: packRepo,
		userRepo: userRepo,
		resolver: resolver,
	}
}

func (ps *packService) List(ctx context.Context, filter repos.PackListFilter) (*types.PackListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	packs, total, err := ps.packRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	items, err := ps.withCreatorNames(ctx, packs)
	if err != nil {
		return nil, err
	}
	return &types.PackListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (ps *packService) Create(ctx context.Context, userID uuid.UUID, input CreatePackInput) (*types.PackResponse, error) {
	if input.OEM == "" || input.Model == "" || input.Year == 0 {
		return nil, apierr.InvalidArgument("oem, model, and year are required")
	}

	exists, err := ps.packRepo.NaturalKeyExists(ctx, nil, input.OEM, input.Model, input.Variant, input.Year, input.Market)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("a pack with this oem, model, variant, year, and market already exists")
	}

	pack := &types.Pack{
		ID:           uuid.New(),
		OEM:          input.OEM,
		Model:        input.Model,
		Year:         input.Year,
		Variant:      input.Variant,
		Market:       input.Market,
		FuelType:     input.FuelType,
		VehicleClass: input.VehicleClass,
		Drivetrain:   input.Drivetrain,
		Platform:     input.Platform,
		IsActive:     true,
		CreatedBy:    &userID,
	}
	if err := ps.packRepo.Create(ctx, nil, pack); err != nil {
		return nil, err
	}
	return ps.toResponse(ctx, pack)
}

func (ps *packService) GetDetail(ctx context.Context, packID, userID uuid.UUID) (*types.PackDetailResponse, error) {
	pack, err := ps.packRepo.GetActiveByID(ctx, nil, packID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("pack %s not found", packID)
		}
		return nil, err
	}

	domains, err := ps.resolver.ResolvePackValues(ctx, packID, userID, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ps.toResponse(ctx, pack)
	if err != nil {
		return nil, err
	}
	return &types.PackDetailResponse{
		PackResponse: *resp,
		Domains:      domains,
	}, nil
}

func (ps *packService) Update(ctx context.Context, packID uuid.UUID, input UpdatePackInput) (*types.PackResponse, error) {
	pack, err := ps.packRepo.GetActiveByID(ctx, nil, packID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("pack %s not found", packID)
		}
		return nil, err
	}

	if input.OEM != nil {
		pack.OEM = *input.OEM
	}
	if input.Model != nil {
		pack.Model = *input.Model
	}
	if input.Year != nil {
		pack.Year = *input.Year
	}
	if input.Variant != nil {
		pack.Variant = *input.Variant
	}
	if input.Market != nil {
		pack.Market = *input.Market
	}
	if input.FuelType != nil {
		pack.FuelType = *input.FuelType
	}
	if input.VehicleClass != nil {
		pack.VehicleClass = *input.VehicleClass
	}
	if input.Drivetrain != nil {
		pack.Drivetrain = *input.Drivetrain
	}
	if input.Platform != nil {
		pack.Platform = *input.Platform
	}

	if err := ps.packRepo.Save(ctx, nil, pack); err != nil {
		return nil, err
	}
	return ps.toResponse(ctx, pack)
}

func (ps *packService) SoftDelete(ctx context.Context, packID uuid.UUID) error {
	if _, err := ps.packRepo.GetActiveByID(ctx, nil, packID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("pack %s not found", packID)
		}
		return err
	}
	return ps.packRepo.SoftDelete(ctx, nil, packID)
}

func (ps *packService) toResponse(ctx context.Context, pack *types.Pack) (*types.PackResponse, error) {
	resp := &types.PackResponse{Pack: *pack}
	if pack.CreatedBy != nil {
		if creator, err := ps.userRepo.GetByID(ctx, nil, *pack.CreatedBy); err == nil {
			resp.CreatedByName = creator.DisplayName
		}
	}
	return resp, nil
}

func (ps *packService) withCreatorNames(ctx context.Context, packs []*types.Pack) ([]types.PackResponse, error) {
	creatorSet := make(map[uuid.UUID]bool)
	for _, p := range packs {
		if p.CreatedBy != nil {
			creatorSet[*p.CreatedBy] = true
		}
	}
	creatorIDs := make([]uuid.UUID, 0, len(creatorSet))
	for id := range creatorSet {
		creatorIDs = append(creatorIDs, id)
	}
	creators, err := ps.userRepo.GetByIDs(ctx, nil, creatorIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(creators))
	for _, u := range creators {
		nameByID[u.ID] = u.DisplayName
	}

	out := make([]types.PackResponse, 0, len(packs))
	for _, p := range packs {
		resp := types.PackResponse{Pack: *p}
		if p.CreatedBy != nil {
			resp.CreatedByName = nameByID[*p.CreatedBy]
		}
		out = append(out, resp)
	}
	return out, nil
}
