package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type SourcePriorityService interface {
	// EffectivePriority returns the user's stored ranking, or the
	// system default when none is stored. tx may be nil.
	EffectivePriority(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error)
	Get(ctx context.Context, userID uuid.UUID) (*types.SourcePriorityResponse, error)
	Update(ctx context.Context, userID uuid.UUID, order []string) (*types.SourcePriorityResponse, error)
	// SeedDefault stores the default ranking for a new user.
	SeedDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type sourcePriorityService struct {
	db           *gorm.DB
	log          *logger.Logger
	priorityRepo repos.SourcePriorityRepo
}

func NewSourcePriorityService(db *gorm.DB, log *logger.Logger, priorityRepo repos.SourcePriorityRepo) SourcePriorityService {
	return &sourcePriorityService{
		db:           db,
		log:          log.With("service", "SourcePriorityService"),
		priorityRepo: priorityRepo,
	}
}

func (sps *sourcePriorityService) EffectivePriority(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]string, error) {
	stored, err := sps.priorityRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("load source priority: %w", err)
	}
	if stored == nil {
		return types.DefaultSourcePriority(), nil
	}
	var order []string
	if err := json.Unmarshal(stored.PriorityOrder, &order); err != nil {
		return nil, fmt.Errorf("decode stored priority order: %w", err)
	}
	return order, nil
}

func (sps *sourcePriorityService) Get(ctx context.Context, userID uuid.UUID) (*types.SourcePriorityResponse, error) {
	order, err := sps.EffectivePriority(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return &types.SourcePriorityResponse{UserID: userID, PriorityOrder: order}, nil
}

func (sps *sourcePriorityService) Update(ctx context.Context, userID uuid.UUID, order []string) (*types.SourcePriorityResponse, error) {
	if err := types.ValidatePriorityOrder(order); err != nil {
		return nil, apierr.UnprocessableArgument("invalid priority order: %v", err)
	}
	encoded, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode priority order: %w", err)
	}
	priority := &types.SourcePriority{UserID: userID, PriorityOrder: encoded}
	if err := sps.priorityRepo.Upsert(ctx, nil, priority); err != nil {
		return nil, fmt.Errorf("store source priority: %w", err)
	}
	return &types.SourcePriorityResponse{UserID: userID, PriorityOrder: order}, nil
}

func (sps *sourcePriorityService) SeedDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	encoded, err := json.Marshal(types.DefaultSourcePriority())
	if err != nil {
		return fmt.Errorf("encode default priority order: %w", err)
	}
	return sps.priorityRepo.Upsert(ctx, tx, &types.SourcePriority{
		UserID:        userID,
		PriorityOrder: encoded,
	})
}
