package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type CreateValueInput struct {
	FieldID      uuid.UUID `json:"field_id"`
	ValueText    string    `json:"value_text"`
	SourceType   string    `json:"source_type"`
	SourceDetail string    `json:"source_detail"`
}

// UpdateValueInput carries the only mutable parts of a value. The
// ranking key (source_type) and the pack/field references are fixed at
// creation.
type UpdateValueInput struct {
	ValueText    *string `json:"value_text,omitempty"`
	SourceDetail *string `json:"source_detail,omitempty"`
}

type ValueService interface {
	// ResolveForPack checks pack (and optional field) existence, then
	// resolves; a field id narrows the resolution to its domain.
	ResolveForPack(ctx context.Context, packID, userID uuid.UUID, fieldID *uuid.UUID) ([]types.DomainResolvedFields, error)
	Create(ctx context.Context, packID, userID uuid.UUID, input CreateValueInput) (*types.ValueResponse, error)
	Update(ctx context.Context, valueID uuid.UUID, input UpdateValueInput) (*types.ValueResponse, error)
	SoftDelete(ctx context.Context, valueID uuid.UUID) error
}

type valueService struct {
	db          *gorm.DB
	log         *logger.Logger
	packRepo    repos.PackRepo
	fieldRepo   repos.FieldRepo
	valueRepo   repos.FieldValueRepo
	userRepo    repos.UserRepo
	commentRepo repos.CommentRepo
	resolver    ResolverService
}

func NewValueService(
	db *gorm.DB,
	log *logger.Logger,
	packRepo repos.PackRepo,
	fieldRepo repos.FieldRepo,
	valueRepo repos.FieldValueRepo,
	userRepo repos.UserRepo,
	commentRepo repos.CommentRepo,
	resolver ResolverService,
) ValueService {
	return &valueService{
		db:          db,
		log:         log.With("service", "ValueService"),
		packRepo:    packRepo,
		fieldRepo:   fieldRepo,
		valueRepo:   valueRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		resolver:    resolver,
	}
}

func (vs *valueService) ResolveForPack(ctx context.Context, packID, userID uuid.UUID, fieldID *uuid.UUID) ([]types.DomainResolvedFields, error) {
	if _, err := vs.packRepo.GetActiveByID(ctx, nil, packID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("pack %s not found", packID)
		}
		return nil, err
	}

	var domainID *uuid.UUID
	if fieldID != nil {
		field, err := vs.fieldRepo.GetByID(ctx, nil, *fieldID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierr.NotFound("field %s not found", *fieldID)
			}
			return nil, err
		}
		domainID = &field.DomainID
	}
	return vs.resolver.ResolvePackValues(ctx, packID, userID, domainID)
}

func (vs *valueService) Create(ctx context.Context, packID, userID uuid.UUID, input CreateValueInput) (*types.ValueResponse, error) {
	if strings.TrimSpace(input.ValueText) == "" {
		return nil, apierr.InvalidArgument("value_text is required")
	}
	if strings.TrimSpace(input.SourceDetail) == "" {
		return nil, apierr.InvalidArgument("source_detail is required")
	}
	if !types.IsValidSourceType(input.SourceType) {
		return nil, apierr.UnprocessableArgument("source_type must be one of: %v", types.SourceTypes)
	}

	if _, err := vs.packRepo.GetActiveByID(ctx, nil, packID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("pack %s not found", packID)
		}
		return nil, err
	}

	field, err := vs.fieldRepo.GetActiveByID(ctx, nil, input.FieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("field %s not found", input.FieldID)
		}
		return nil, err
	}

	if field.DataType == types.DataTypeSelect {
		if err := validateSelectOption(field, input.ValueText); err != nil {
			return nil, err
		}
	}

	value := &types.FieldValue{
		ID:            uuid.New(),
		PackID:        packID,
		FieldID:       input.FieldID,
		ValueText:     input.ValueText,
		SourceType:    input.SourceType,
		SourceDetail:  input.SourceDetail,
		ContributedBy: userID,
		IsActive:      true,
	}
	if field.DataType == types.DataTypeNumber {
		value.ValueNumeric = parseNumeric(input.ValueText)
	}
	if err := vs.valueRepo.Create(ctx, nil, value); err != nil {
		return nil, err
	}
	return vs.toResponse(ctx, value)
}

func (vs *valueService) Update(ctx context.Context, valueID uuid.UUID, input UpdateValueInput) (*types.ValueResponse, error) {
	value, err := vs.valueRepo.GetActiveByID(ctx, nil, valueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("value %s not found", valueID)
		}
		return nil, err
	}

	if input.ValueText != nil {
		if strings.TrimSpace(*input.ValueText) == "" {
			return nil, apierr.InvalidArgument("value_text must not be empty")
		}
		field, err := vs.fieldRepo.GetByID(ctx, nil, value.FieldID)
		if err != nil {
			return nil, err
		}
		if field.DataType == types.DataTypeSelect {
			if err := validateSelectOption(field, *input.ValueText); err != nil {
				return nil, err
			}
		}
		value.ValueText = *input.ValueText
		value.ValueNumeric = nil
		if field.DataType == types.DataTypeNumber {
			value.ValueNumeric = parseNumeric(*input.ValueText)
		}
	}
	if input.SourceDetail != nil {
		if strings.TrimSpace(*input.SourceDetail) == "" {
			return nil, apierr.InvalidArgument("source_detail must not be empty")
		}
		value.SourceDetail = *input.SourceDetail
	}

	if err := vs.valueRepo.Save(ctx, nil, value); err != nil {
		return nil, err
	}
	return vs.toResponse(ctx, value)
}

func (vs *valueService) SoftDelete(ctx context.Context, valueID uuid.UUID) error {
	if _, err := vs.valueRepo.GetActiveByID(ctx, nil, valueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("value %s not found", valueID)
		}
		return err
	}
	return vs.valueRepo.SoftDelete(ctx, nil, valueID)
}

// validateSelectOption enforces the field's closed option list.
func validateSelectOption(field *types.Field, valueText string) error {
	if len(field.SelectOptions) == 0 {
		return nil
	}
	var options []string
	if err := json.Unmarshal(field.SelectOptions, &options); err != nil {
		return apierr.UnprocessableValue("field %s has malformed select options", field.ID)
	}
	for _, opt := range options {
		if opt == valueText {
			return nil
		}
	}
	return apierr.UnprocessableValue("value_text must be one of: %v", options)
}

// parseNumeric attempts a float parse of the value text. Failure is
// tolerated, not rejected: contributors may annotate numbers
// ("≈120 (est.)"), in which case the numeric slot just stays empty.
func parseNumeric(valueText string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return nil
	}
	return &f
}

func (vs *valueService) toResponse(ctx context.Context, value *types.FieldValue) (*types.ValueResponse, error) {
	contributorName := ""
	if contributor, err := vs.userRepo.GetByID(ctx, nil, value.ContributedBy); err == nil {
		contributorName = contributor.DisplayName
	}
	counts, err := vs.commentRepo.CountByValueIDs(ctx, nil, []uuid.UUID{value.ID})
	if err != nil {
		return nil, err
	}
	return &types.ValueResponse{
		ID:              value.ID,
		PackID:          value.PackID,
		FieldID:         value.FieldID,
		ValueText:       value.ValueText,
		ValueNumeric:    value.ValueNumeric,
		SourceType:      value.SourceType,
		SourceDetail:    value.SourceDetail,
		ContributedBy:   value.ContributedBy,
		ContributorName: contributorName,
		IsActive:        value.IsActive,
		CreatedAt:       value.CreatedAt,
		UpdatedAt:       value.UpdatedAt,
		CommentCount:    counts[value.ID],
	}, nil
}
