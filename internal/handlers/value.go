package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type ValueHandler struct {
	valueService services.ValueService
}

func NewValueHandler(valueService services.ValueService) *ValueHandler {
	return &ValueHandler{valueService: valueService}
}

func (vh *ValueHandler) GetPackValues(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid pack id"))
		return
	}
	var fieldID *uuid.UUID
	if raw := c.Query("field_id"); raw != "" {
		fid, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid field_id"))
			return
		}
		fieldID = &fid
	}
	userID := requestdata.UserID(c.Request.Context())
	resolved, err := vh.valueService.ResolveForPack(c.Request.Context(), packID, userID, fieldID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, resolved)
}

func (vh *ValueHandler) Create(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid pack id"))
		return
	}
	var input services.CreateValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	value, err := vh.valueService.Create(c.Request.Context(), packID, userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, value)
}

func (vh *ValueHandler) Update(c *gin.Context) {
	valueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid value id"))
		return
	}
	var input services.UpdateValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	value, err := vh.valueService.Update(c.Request.Context(), valueID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, value)
}

func (vh *ValueHandler) Delete(c *gin.Context) {
	valueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid value id"))
		return
	}
	if err := vh.valueService.SoftDelete(c.Request.Context(), valueID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
