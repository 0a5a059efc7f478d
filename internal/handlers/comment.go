package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type CommentHandler struct {
	commentService services.CommentService
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (ch *CommentHandler) List(c *gin.Context) {
	valueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid value id"))
		return
	}
	comments, err := ch.commentService.ListForValue(c.Request.Context(), valueID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, comments)
}

func (ch *CommentHandler) Create(c *gin.Context) {
	valueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid value id"))
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	comment, err := ch.commentService.Create(c.Request.Context(), valueID, userID, req.Text)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, comment)
}
