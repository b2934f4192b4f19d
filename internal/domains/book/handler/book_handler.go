package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"libcatalog-backend/internal/domains/book/model"
	"libcatalog-backend/internal/domains/book/service"
	"libcatalog-backend/internal/shared/domainerror"
	"libcatalog-backend/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// Create - POST /books
// Schema violations come back as 400 with a details array so a client can
// fix every problem in one round trip. Domain violations (bad ISBN, bad
// format, duplicate) surface one at a time with their mapped status.
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "validation failed", model.ValidationDetails(err))
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, book.ToResponse())
}

// GetByID - GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if domainerror.IsKind(err, domainerror.KindBookNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book.ToResponse())
}

// List - GET /books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	data := make([]model.BookResponse, len(books))
	for i, b := range books {
		data[i] = b.ToResponse()
	}

	response.JSON(c, http.StatusOK, model.BookListResponse{
		Data:  data,
		Total: len(data),
	})
}

// Update - PATCH /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	var req model.UpdateBookRequest
	if err := c.BindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if domainerror.IsKind(err, domainerror.KindBookNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book.ToResponse())
}

// Delete - DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid UUID format")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "book not found")
		return
	}

	response.JSON(c, http.StatusOK, model.DeleteBookResponse{
		ID:      id,
		Deleted: true,
	})
}

// Count - GET /books/count
func (h *BookHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"count": count})
}
