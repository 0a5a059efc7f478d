package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type CommentService interface {
	ListForValue(ctx context.Context, valueID uuid.UUID) ([]types.CommentResponse, error)
	Create(ctx context.Context, valueID, authorID uuid.UUID, text string) (*types.CommentResponse, error)
}

type commentService struct {
	db          *gorm.DB
	log         *logger.Logger
	valueRepo   repos.FieldValueRepo
	commentRepo repos.CommentRepo
	userRepo    repos.UserRepo
}

func NewCommentService(db *gorm.DB, log *logger.Logger, valueRepo repos.FieldValueRepo, commentRepo repos.CommentRepo, userRepo repos.UserRepo) CommentService {
	return &commentService{
		db:          db,
		log:         log.With("service", "CommentService"),
		valueRepo:   valueRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

func (cs *commentService) ListForValue(ctx context.Context, valueID uuid.UUID) ([]types.CommentResponse, error) {
	if _, err := cs.valueRepo.GetActiveByID(ctx, nil, valueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("value %s not found", valueID)
		}
		return nil, err
	}

	comments, err := cs.commentRepo.ListByValueID(ctx, nil, valueID)
	if err != nil {
		return nil, err
	}

	authorSet := make(map[uuid.UUID]bool)
	for _, c := range comments {
		authorSet[c.AuthorID] = true
	}
	authorIDs := make([]uuid.UUID, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}
	authors, err := cs.userRepo.GetByIDs(ctx, nil, authorIDs)
	if err != nil {
		return nil, err
	}
	nameByID := make(map[uuid.UUID]string, len(authors))
	for _, u := range authors {
		nameByID[u.ID] = u.DisplayName
	}

	out := make([]types.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, types.CommentResponse{
			ID:         c.ID,
			ValueID:    c.ValueID,
			AuthorID:   c.AuthorID,
			AuthorName: nameByID[c.AuthorID],
			Text:       c.Text,
			CreatedAt:  c.CreatedAt,
		})
	}
	return out, nil
}

func (cs *commentService) Create(ctx context.Context, valueID, authorID uuid.UUID, text string) (*types.CommentResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierr.InvalidArgument("text is required")
	}
	if _, err := cs.valueRepo.GetActiveByID(ctx, nil, valueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("value %s not found", valueID)
		}
		return nil, err
	}

	comment := &types.Comment{
		ID:       uuid.New(),
		ValueID:  valueID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := cs.commentRepo.Create(ctx, nil, comment); err != nil {
		return nil, err
	}

	authorName := ""
	if author, err := cs.userRepo.GetByID(ctx, nil, authorID); err == nil {
		authorName = author.DisplayName
	}
	return &types.CommentResponse{
		ID:         comment.ID,
		ValueID:    comment.ValueID,
		AuthorID:   comment.AuthorID,
		AuthorName: authorName,
		Text:       comment.Text,
		CreatedAt:  comment.CreatedAt,
	}, nil
}
