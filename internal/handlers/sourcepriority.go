package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type SourcePriorityHandler struct {
	priorityService services.SourcePriorityService
}

func NewSourcePriorityHandler(priorityService services.SourcePriorityService) *SourcePriorityHandler {
	return &SourcePriorityHandler{priorityService: priorityService}
}

func (sph *SourcePriorityHandler) Get(c *gin.Context) {
	userID := requestdata.UserID(c.Request.Context())
	priority, err := sph.priorityService.Get(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, priority)
}

func (sph *SourcePriorityHandler) Update(c *gin.Context) {
	var req struct {
		PriorityOrder []string `json:"priority_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	priority, err := sph.priorityService.Update(c.Request.Context(), userID, req.PriorityOrder)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, priority)
}
