package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type CompareHandler struct {
	compareService services.CompareService
}

func NewCompareHandler(compareService services.CompareService) *CompareHandler {
	return &CompareHandler{compareService: compareService}
}

func (ch *CompareHandler) Compare(c *gin.Context) {
	idsParam := c.Query("ids")
	if idsParam == "" {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("ids query parameter is required"))
		return
	}
	parts := strings.Split(idsParam, ",")
	packIDs := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("ids must be comma-separated pack ids"))
			return
		}
		packIDs = append(packIDs, id)
	}

	userID := requestdata.UserID(c.Request.Context())
	result, err := ch.compareService.Compare(c.Request.Context(), packIDs, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}
