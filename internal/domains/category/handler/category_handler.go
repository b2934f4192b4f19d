package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/category/service"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/internal/shared/response"
)

type CategoryHandler struct {
	service service.ServiceInterface
}

func NewCategoryHandler(svc service.ServiceInterface) *CategoryHandler {
	return &CategoryHandler{
		service: svc,
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Create - POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.service.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, cat)
}

// GetByID - GET /categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	cat, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if domainerror.IsKind(err, domainerror.KindCategoryNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, cat)
}

// List - GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, categories)
}
