package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/packdb-backend/internal/requestdata"
	"github.com/yungbote/packdb-backend/internal/services"
)

type DomainHandler struct {
	domainService services.DomainService
}

func NewDomainHandler(domainService services.DomainService) *DomainHandler {
	return &DomainHandler{domainService: domainService}
}

func (dh *DomainHandler) List(c *gin.Context) {
	domains, err := dh.domainService.ListDomains(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, domains)
}

func (dh *DomainHandler) Create(c *gin.Context) {
	var input services.CreateDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	domain, err := dh.domainService.CreateDomain(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, domain)
}

func (dh *DomainHandler) ListFields(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid domain id"))
		return
	}
	fields, err := dh.domainService.ListDomainFields(c.Request.Context(), domainID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, fields)
}

func (dh *DomainHandler) CreateField(c *gin.Context) {
	domainID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid domain id"))
		return
	}
	var input services.CreateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_argument", errors.New("invalid request body"))
		return
	}
	userID := requestdata.UserID(c.Request.Context())
	field, err := dh.domainService.CreateField(c.Request.Context(), domainID, userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, field)
}
