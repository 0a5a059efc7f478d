package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type PackHandler struct {
	packService services.PackService
}

func NewPackHandler(packService services.PackService) *PackHandler {
	return &PackHandler{packService: packService}
}

func (ph *PackHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := repos.PackListFilter{
		OEM:          c.Query("oem"),
		Model:        c.Query("model"),
		Market:       c.Query("market"),
		FuelType:     c.Query("fuel_type"),
		VehicleClass: c.Query("vehicle_class"),
		Drivetrain:   c.Query("drivetrain"),
		Platform:     c.Query("platform"),
		Search:       c.Query("search"),
		Page:         page,
		PageSize:     pageSize,
		SortBy:       c.DefaultQuery("sort_by", "created_at"),
		SortDir:      c.DefaultQuery("sort_dir", "desc"),
	}

	result, err := ph.packService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ph *PackHandler) Create(c *gin.Context) {
	var input services.CreatePackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	pack, err := ph.packService.Create(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, pack)
}

func (ph *PackHandler) GetDetail(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid pack id"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	detail, err := ph.packService.GetDetail(c.Request.Context(), packID, userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, detail)
}

func (ph *PackHandler) Update(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid pack id"))
		return
	}
	var input services.UpdatePackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	pack, err := ph.packService.Update(c.Request.Context(), packID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, pack)
}

func (ph *PackHandler) Delete(c *gin.Context) {
	packID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid pack id"))
		return
	}
	if err := ph.packService.SoftDelete(c.Request.Context(), packID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
