package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/services"
)

type FieldHandler struct {
	domainService services.DomainService
}

func NewFieldHandler(domainService services.DomainService) *FieldHandler {
	return &FieldHandler{domainService: domainService}
}

func (fh *FieldHandler) Update(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid field id"))
		return
	}
	var input services.UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	field, err := fh.domainService.UpdateField(c.Request.Context(), fieldID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, field)
}

func (fh *FieldHandler) Delete(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid field id"))
		return
	}
	if err := fh.domainService.SoftDeleteField(c.Request.Context(), fieldID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
