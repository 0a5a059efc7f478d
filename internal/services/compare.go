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

// CompareService pivots per-pack resolutions into a side-by-side table.
// The first pack's resolved structure is the authoritative shape:
// domains or fields that only exist for the other packs are omitted.
// That asymmetry is deliberate, not an oversight.
type CompareService interface {
	Compare(ctx context.Context, packIDs []uuid.UUID, userID uuid.UUID) (*types.CompareResponse, error)
}

type compareService struct {
	log      *logger.Logger
	packRepo repos.PackRepo
	userRepo repos.UserRepo
	resolver ResolverService
}

func NewCompareService(log *logger.Logger, packRepo repos.PackRepo, userRepo repos.UserRepo, resolver ResolverService) CompareService {
	return &compareService{
		log:      log.With("service", "CompareService"),
		packRepo: packRepo,
		userRepo: userRepo,
		resolver: resolver,
	}
}

func (cs *compareService) Compare(ctx context.Context, packIDs []uuid.UUID, userID uuid.UUID) (*types.CompareResponse, error) {
	if len(packIDs) < 2 || len(packIDs) > 3 {
		return nil, apierr.InvalidArgument("must provide 2 or 3 pack ids, got %d", len(packIDs))
	}

	packs := make([]*types.Pack, 0, len(packIDs))
	for _, pid := range packIDs {
		pack, err := cs.packRepo.GetActiveByID(ctx, nil, pid)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("pack %s not found", pid)
		}
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}

	resolvedByPack := make(map[uuid.UUID][]types.DomainResolvedFields, len(packIDs))
	for _, pid := range packIDs {
		resolved, err := cs.resolver.ResolvePackValues(ctx, pid, userID, nil)
		if err != nil {
			return nil, err
		}
		resolvedByPack[pid] = resolved
	}

	reference := resolvedByPack[packIDs[0]]
	compareDomains := make([]types.CompareDomainEntry, 0, len(reference))
	for _, refDomain := range reference {
		compareFields := make([]types.CompareFieldEntry, 0, len(refDomain.Fields))
		for _, refField := range refDomain.Fields {
			valuesByPack := make(map[uuid.UUID]*types.ValueResponse, len(packIDs))
			for _, pid := range packIDs {
				valuesByPack[pid] = lookupResolvedValue(resolvedByPack[pid], refDomain.DomainID, refField.FieldID)
			}
			compareFields = append(compareFields, types.CompareFieldEntry{
				FieldID:      refField.FieldID,
				FieldName:    refField.FieldName,
				DisplayName:  refField.DisplayName,
				Unit:         refField.Unit,
				DataType:     refField.DataType,
				ValuesByPack: valuesByPack,
			})
		}
		compareDomains = append(compareDomains, types.CompareDomainEntry{
			DomainID:   refDomain.DomainID,
			DomainName: refDomain.DomainName,
			SortOrder:  refDomain.SortOrder,
			Fields:     compareFields,
		})
	}

	packResponses, err := cs.packResponses(ctx, packs)
	if err != nil {
		return nil, err
	}
	return &types.CompareResponse{
		Packs:   packResponses,
		Domains: compareDomains,
	}, nil
}

// lookupResolvedValue finds a pack's winning value for a (domain,
// field) pair, or nil when the pack's resolution lacks that cell.
func lookupResolvedValue(resolved []types.DomainResolvedFields, domainID, fieldID uuid.UUID) *types.ValueResponse {
	for _, d := range resolved {
		if d.DomainID != domainID {
			continue
		}
		for _, f := range d.Fields {
			if f.FieldID == fieldID {
				return f.ResolvedValue
			}
		}
		return nil
	}
	return nil
}

func (cs *compareService) packResponses(ctx context.Context, packs []*types.Pack) ([]types.PackResponse, error) {
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
	creators, err := cs.userRepo.GetByIDs(ctx, nil, creatorIDs)
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
