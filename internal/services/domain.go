package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type CreateDomainInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type CreateFieldInput struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Unit          string   `json:"unit"`
	DataType      string   `json:"data_type"`
	SelectOptions []string `json:"select_options,omitempty"`
	Description   string   `json:"description"`
	SortOrder     int      `json:"sort_order"`
}

type UpdateFieldInput struct {
	Name          *string   `json:"name,omitempty"`
	DisplayName   *string   `json:"display_name,omitempty"`
	Unit          *string   `json:"unit,omitempty"`
	DataType      *string   `json:"data_type,omitempty"`
	SelectOptions *[]string `json:"select_options,omitempty"`
	Description   *string   `json:"description,omitempty"`
	SortOrder     *int      `json:"sort_order,omitempty"`
}

type DomainService interface {
	ListDomains(ctx context.Context) ([]*types.Domain, error)
	CreateDomain(ctx context.Context, userID uuid.UUID, input CreateDomainInput) (*types.Domain, error)
	ListDomainFields(ctx context.Context, domainID uuid.UUID) ([]*types.Field, error)
	CreateField(ctx context.Context, domainID, userID uuid.UUID, input CreateFieldInput) (*types.Field, error)
	UpdateField(ctx context.Context, fieldID uuid.UUID, input UpdateFieldInput) (*types.Field, error)
	SoftDeleteField(ctx context.Context, fieldID uuid.UUID) error
}

type domainService struct {
	db         *gorm.DB
	log        *logger.Logger
	domainRepo repos.DomainRepo
	fieldRepo  repos.FieldRepo
}

func NewDomainService(db *gorm.DB, log *logger.Logger, domainRepo repos.DomainRepo, fieldRepo repos.FieldRepo) DomainService {
	return &domainService{
		db:         db,
		log:        log.With("service", "DomainService"),
		domainRepo: domainRepo,
		fieldRepo:  fieldRepo,
	}
}

func (ds *domainService) ListDomains(ctx context.Context) ([]*types.Domain, error) {
	return ds.domainRepo.ListOrdered(ctx, nil, nil)
}

func (ds *domainService) CreateDomain(ctx context.Context, userID uuid.UUID, input CreateDomainInput) (*types.Domain, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apierr.InvalidArgument("name is required")
	}
	exists, err := ds.domainRepo.NameExists(ctx, nil, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("a domain named %q already exists", input.Name)
	}

	domain := &types.Domain{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsDefault:   false,
		CreatedBy:   &userID,
	}
	if err := ds.domainRepo.Create(ctx, nil, domain); err != nil {
		return nil, err
	}
	return domain, nil
}

func (ds *domainService) ListDomainFields(ctx context.Context, domainID uuid.UUID) ([]*types.Field, error) {
	if _, err := ds.domainRepo.GetByID(ctx, nil, domainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("domain %s not found", domainID)
		}
		return nil, err
	}
	return ds.fieldRepo.ListActiveByDomainIDs(ctx, nil, []uuid.UUID{domainID})
}

func (ds *domainService) CreateField(ctx context.Context, domainID, userID uuid.UUID, input CreateFieldInput) (*types.Field, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.DisplayName) == "" {
		return nil, apierr.InvalidArgument("name and display_name are required")
	}
	dataType := input.DataType
	if dataType == "" {
		dataType = types.DataTypeText
	}
	if !types.IsValidDataType(dataType) {
		return nil, apierr.InvalidArgument("data_type must be one of: text, number, select")
	}
	if dataType == types.DataTypeSelect && len(input.SelectOptions) == 0 {
		return nil, apierr.InvalidArgument("select_options is required when data_type is select")
	}

	if _, err := ds.domainRepo.GetByID(ctx, nil, domainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("domain %s not found", domainID)
		}
		return nil, err
	}
	exists, err := ds.fieldRepo.NameExistsInDomain(ctx, nil, domainID, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("a field named %q already exists in this domain", input.Name)
	}

	field := &types.Field{
		ID:          uuid.New(),
		DomainID:    domainID,
		Name:        input.Name,
		DisplayName: input.DisplayName,
		Unit:        input.Unit,
		DataType:    dataType,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		CreatedBy:   &userID,
		IsActive:    true,
	}
	if len(input.SelectOptions) > 0 {
		encoded, err := json.Marshal(input.SelectOptions)
		if err != nil {
			return nil, err
		}
		field.SelectOptions = encoded
	}
	if err := ds.fieldRepo.Create(ctx, nil, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (ds *domainService) UpdateField(ctx context.Context, fieldID uuid.UUID, input UpdateFieldInput) (*types.Field, error) {
	field, err := ds.fieldRepo.GetActiveByID(ctx, nil, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("field %s not found", fieldID)
		}
		return nil, err
	}

	if input.Name != nil && *input.Name != field.Name {
		exists, err := ds.fieldRepo.NameExistsInDomain(ctx, nil, field.DomainID, *input.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apierr.Conflict("a field named %q already exists in this domain", *input.Name)
		}
		field.Name = *input.Name
	}
	if input.DisplayName != nil {
		field.DisplayName = *input.DisplayName
	}
	if input.Unit != nil {
		field.Unit = *input.Unit
	}
	if input.DataType != nil {
		if !types.IsValidDataType(*input.DataType) {
			return nil, apierr.InvalidArgument("data_type must be one of: text, number, select")
		}
		field.DataType = *input.DataType
	}
	if input.SelectOptions != nil {
		encoded, err := json.Marshal(*input.SelectOptions)
		if err != nil {
			return nil, err
		}
		field.SelectOptions = encoded
	}
	if input.Description != nil {
		field.Description = *input.Description
	}
	if input.SortOrder != nil {
		field.SortOrder = *input.SortOrder
	}

	if err := ds.fieldRepo.Save(ctx, nil, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (ds *domainService) SoftDeleteField(ctx context.Context, fieldID uuid.UUID) error {
	if _, err := ds.fieldRepo.GetActiveByID(ctx, nil, fieldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("field %s not found", fieldID)
		}
		return err
	}
	return ds.fieldRepo.SoftDelete(ctx, nil, fieldID)
}
