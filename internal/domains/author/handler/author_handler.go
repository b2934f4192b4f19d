package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/author/service"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

type createAuthorRequest struct {
	Name string `json:"name"`
}

// Create - POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, a)
}

// GetByID - GET /authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if domainerror.IsKind(err, domainerror.KindAuthorNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, a)
}

// List - GET /authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, authors)
}
