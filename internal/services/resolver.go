package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

// ResolverService picks, for every field of a pack, the winning value
// among all contributed values according to the requesting user's
// source-trust ranking, and returns the full ranked alternative set.
type ResolverService interface {
	// ResolvePackValues resolves all domains of a pack, or a single
	// domain when domainID is non-nil. Unknown pack ids simply yield
	// empty groups; existence checks are the caller's job.
	ResolvePackValues(ctx context.Context, packID, userID uuid.UUID, domainID *uuid.UUID) ([]types.DomainResolvedFields, error)
}

type resolverService struct {
	db          *gorm.DB
	log         *logger.Logger
	domainRepo  repos.DomainRepo
	fieldRepo   repos.FieldRepo
	valueRepo   repos.FieldValueRepo
	commentRepo repos.CommentRepo
	userRepo    repos.UserRepo
	priorities  SourcePriorityService
}

func NewResolverService(
	db *gorm.DB,
	log *logger.Logger,
	domainRepo repos.DomainRepo,
	fieldRepo repos.FieldRepo,
	valueRepo repos.FieldValueRepo,
	commentRepo repos.CommentRepo,
	userRepo repos.UserRepo,
	priorities SourcePriorityService,
) ResolverService {
	return &resolverService{
		db:          db,
		log:         log.With("service", "ResolverService"),
		domainRepo:  domainRepo,
		fieldRepo:   fieldRepo,
		valueRepo:   valueRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		priorities:  priorities,
	}
}

func (rs *resolverService) ResolvePackValues(ctx context.Context, packID, userID uuid.UUID, domainID *uuid.UUID) ([]types.DomainResolvedFields, error) {
	var result []types.DomainResolvedFields
	// One transaction per resolution so the domain, field, and value
	// reads see a single consistent snapshot.
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolved, err := rs.resolveInTx(ctx, tx, packID, userID, domainID)
		if err != nil {
			return err
		}
		result = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (rs *resolverService) resolveInTx(ctx context.Context, tx *gorm.DB, packID, userID uuid.UUID, domainID *uuid.UUID) ([]types.DomainResolvedFields, error) {
	priorityOrder, err := rs.priorities.EffectivePriority(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	domains, err := rs.domainRepo.ListOrdered(ctx, tx, domainID)
	if err != nil {
		return nil, fmt.Errorf("load domains: %w", err)
	}

	domainIDs := make([]uuid.UUID, 0, len(domains))
	for _, d := range domains {
		domainIDs = append(domainIDs, d.ID)
	}
	fields, err := rs.fieldRepo.ListActiveByDomainIDs(ctx, tx, domainIDs)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}

	fieldsByDomain := make(map[uuid.UUID][]*types.Field, len(domains))
	for _, f := range fields {
		fieldsByDomain[f.DomainID] = append(fieldsByDomain[f.DomainID], f)
	}

	// No fields at all: emit the domain shells without touching the
	// value table. Domains are never silently dropped.
	if len(fields) == 0 {
		result := make([]types.DomainResolvedFields, 0, len(domains))
		for _, d := range domains {
			result = append(result, types.DomainResolvedFields{
				DomainID:   d.ID,
				DomainName: d.Name,
				SortOrder:  d.SortOrder,
				Fields:     []types.ResolvedField{},
			})
		}
		return result, nil
	}

	fieldIDs := make([]uuid.UUID, 0, len(fields))
	for _, f := range fields {
		fieldIDs = append(fieldIDs, f.ID)
	}
	values, err := rs.valueRepo.ListActiveForPack(ctx, tx, packID, fieldIDs)
	if err != nil {
		return nil, fmt.Errorf("load values: %w", err)
	}

	responses, err := rs.enrichValues(ctx, tx, values)
	if err != nil {
		return nil, err
	}
	valuesByField := make(map[uuid.UUID][]types.ValueResponse)
	for _, v := range responses {
		valuesByField[v.FieldID] = append(valuesByField[v.FieldID], v)
	}

	// Rank lookup built once per resolution; source types somehow
	// missing from the ranking sort after every ranked one.
	rank := make(map[string]int, len(priorityOrder))
	for i, st := range priorityOrder {
		rank[st] = i
	}
	unranked := len(priorityOrder)
	rankOf := func(sourceType string) int {
		if r, ok := rank[sourceType]; ok {
			return r
		}
		return unranked
	}

	result := make([]types.DomainResolvedFields, 0, len(domains))
	for _, d := range domains {
		resolvedFields := make([]types.ResolvedField, 0, len(fieldsByDomain[d.ID]))
		for _, f := range fieldsByDomain[d.ID] {
			group := valuesByField[f.ID]
			// Stable sort keeps the retrieval order between values of
			// the same source type.
			sort.SliceStable(group, func(i, j int) bool {
				return rankOf(group[i].SourceType) < rankOf(group[j].SourceType)
			})

			rf := types.ResolvedField{
				FieldID:     f.ID,
				FieldName:   f.Name,
				DisplayName: f.DisplayName,
				Unit:        f.Unit,
				DataType:    f.DataType,
				AllValues:   group,
			}
			if len(group) > 0 {
				rf.ResolvedValue = &group[0]
				rf.AlternativeCount = len(group) - 1
			}
			if rf.AllValues == nil {
				rf.AllValues = []types.ValueResponse{}
			}
			resolvedFields = append(resolvedFields, rf)
		}
		result = append(result, types.DomainResolvedFields{
			DomainID:   d.ID,
			DomainName: d.Name,
			SortOrder:  d.SortOrder,
			Fields:     resolvedFields,
		})
	}
	return result, nil
}

// enrichValues joins contributor display names and comment counts onto
// the raw value rows, preserving their order.
func (rs *resolverService) enrichValues(ctx context.Context, tx *gorm.DB, values []*types.FieldValue) ([]types.ValueResponse, error) {
	if len(values) == 0 {
		return nil, nil
	}

	valueIDs := make([]uuid.UUID, 0, len(values))
	contributorSet := make(map[uuid.UUID]bool)
	for _, v := range values {
		valueIDs = append(valueIDs, v.ID)
		contributorSet[v.ContributedBy] = true
	}
	contributorIDs := make([]uuid.UUID, 0, len(contributorSet))
	for id := range contributorSet {
		contributorIDs = append(contributorIDs, id)
	}

	contributors, err := rs.userRepo.GetByIDs(ctx, tx, contributorIDs)
	if err != nil {
		return nil, fmt.Errorf("load contributors: %w", err)
	}
	nameByID := make(map[uuid.UUID]string, len(contributors))
	for _, u := range contributors {
		nameByID[u.ID] = u.DisplayName
	}

	counts, err := rs.commentRepo.CountByValueIDs(ctx, tx, valueIDs)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	out := make([]types.ValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, types.ValueResponse{
			ID:              v.ID,
			PackID:          v.PackID,
			FieldID:         v.FieldID,
			ValueText:       v.ValueText,
			ValueNumeric:    v.ValueNumeric,
			SourceType:      v.SourceType,
			SourceDetail:    v.SourceDetail,
			ContributedBy:   v.ContributedBy,
			ContributorName: nameByID[v.ContributedBy],
			IsActive:        v.IsActive,
			CreatedAt:       v.CreatedAt,
			UpdatedAt:       v.UpdatedAt,
			CommentCount:    counts[v.ID],
		})
	}
	return out, nil
}
