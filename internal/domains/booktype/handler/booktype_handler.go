package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/booktype/service"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/internal/shared/response"
)

type BookTypeHandler struct {
	service service.ServiceInterface
}

func NewBookTypeHandler(svc service.ServiceInterface) *BookTypeHandler {
	return &BookTypeHandler{
		service: svc,
	}
}

type createBookTypeRequest struct {
	Name string `json:"name"`
}

// Create - POST /types
func (h *BookTypeHandler) Create(c *gin.Context) {
	var req createBookTypeRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, t)
}

// GetByID - GET /types/:id
func (h *BookTypeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if domainerror.IsKind(err, domainerror.KindBookTypeNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, t)
}

// List - GET /types
func (h *BookTypeHandler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, types)
}
